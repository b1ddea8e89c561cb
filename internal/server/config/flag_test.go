package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalCmp = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
			"-t", "45", "-v", "10", "-m", "25.00", "-y", "12.50", "-l", "3000.00", "-r", "1.10",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddr:                "127.0.0.1:9090",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 45 * time.Minute,
				CodeValidityDuration:        10 * time.Minute,
				InvestmentMinimum:           decimal.RequireFromString("25.00"),
				InvestmentAnnualRate:        decimal.RequireFromString("12.50"),
				CardDefaultLimit:            decimal.RequireFromString("3000.00"),
				LoanRate:                    decimal.RequireFromString("1.10"),
			}},
		{name: "Test2 bad decimal panics", args: []string{"cmd", "-m", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected, decimalCmp))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
