package config

import (
	"flag"
	"os"
	"time"

	"github.com/thaliumbank/thalium/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-v int      verification code validity, minutes
//	-m string   investment minimum, decimal (e.g., "50.00")
//	-y string   investment annual rate, percent (e.g., "10.15")
//	-l string   default credit card limit, decimal
//	-r string   loan interest rate (e.g., "1.05")
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in minutes and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-v", "-m", "-y", "-l", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	codeValidityDuration := fs.Int("v", int(config.CodeValidityDuration.Minutes()), "code_validity_duration (in minutes)")

	investmentMinimum := fs.String("m", config.InvestmentMinimum.String(), "investment minimum")
	investmentAnnualRate := fs.String("y", config.InvestmentAnnualRate.String(), "investment annual rate (percent)")
	cardDefaultLimit := fs.String("l", config.CardDefaultLimit.String(), "default credit card limit")
	loanRate := fs.String("r", config.LoanRate.String(), "loan interest rate")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.CodeValidityDuration = time.Duration(*codeValidityDuration) * time.Minute
	config.InvestmentMinimum = mustDecimal(*investmentMinimum)
	config.InvestmentAnnualRate = mustDecimal(*investmentAnnualRate)
	config.CardDefaultLimit = mustDecimal(*cardDefaultLimit)
	config.LoanRate = mustDecimal(*loanRate)
}
