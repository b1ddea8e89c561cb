package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thaliumbank/thalium/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Duration fields are expressed as integer minutes and monetary fields as
// decimal strings (e.g. "50.00").
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr                string `json:"endpoint_addr"`
	DatabaseDSN                 string `json:"database_dsn"`
	SecretKey                   string `json:"secret_key"`
	AccessTokenValidityMinutes  int    `json:"access_token_validity_minutes"`
	CodeValidityMinutes         int    `json:"code_validity_minutes"`
	InvestmentMinimum           string `json:"investment_minimum"`
	InvestmentAnnualRate        string `json:"investment_annual_rate"`
	CardDefaultLimit            string `json:"card_default_limit"`
	LoanRate                    string `json:"loan_rate"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags. If
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
//
// Only fields present in the file override defaults; absent fields keep
// their current values.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityMinutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityMinutes) * time.Minute
	}
	if c.CodeValidityMinutes > 0 {
		config.CodeValidityDuration = time.Duration(c.CodeValidityMinutes) * time.Minute
	}
	if c.InvestmentMinimum != "" {
		config.InvestmentMinimum = mustDecimal(c.InvestmentMinimum)
	}
	if c.InvestmentAnnualRate != "" {
		config.InvestmentAnnualRate = mustDecimal(c.InvestmentAnnualRate)
	}
	if c.CardDefaultLimit != "" {
		config.CardDefaultLimit = mustDecimal(c.CardDefaultLimit)
	}
	if c.LoanRate != "" {
		config.LoanRate = mustDecimal(c.LoanRate)
	}
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
