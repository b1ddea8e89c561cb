// Package money provides fixed-point currency amounts for the banking core.
// Amounts are shopspring decimals with at most two fractional digits; binary
// floating point never touches a balance.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/thaliumbank/thalium/internal/common"
)

// Zero is the additive identity, useful for opening balances.
var Zero = decimal.Zero

// Parse converts user input into an amount. It fails with ErrInvalidAmount
// when the input is not numeric or carries more than two fractional digits.
// Sign is not restricted here; debiting operations use ParsePositive.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, common.ErrInvalidAmount
	}
	if d.Exponent() < -2 {
		return decimal.Zero, common.ErrInvalidAmount
	}
	return d, nil
}

// ParsePositive parses an amount that must be strictly greater than zero,
// the validation rule shared by every debiting and crediting operation.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, common.ErrInvalidAmount
	}
	return d, nil
}

// ValidatePositive checks an already-parsed amount against the same rule:
// strictly positive and at most two fractional digits.
func ValidatePositive(d decimal.Decimal) error {
	if !d.IsPositive() || d.Exponent() < -2 {
		return common.ErrInvalidAmount
	}
	return nil
}

// FromCents builds an amount from an integer number of minor units.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// String renders an amount with exactly two fractional digits, the form
// stored in journal entries and shown on statements.
func String(d decimal.Decimal) string {
	return d.StringFixed(2)
}
