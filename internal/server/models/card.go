package models

import "github.com/shopspring/decimal"

// Card belongs to a client. LimitUsed never exceeds LimitTotal; paying an
// invoice reduces LimitUsed and debits the linked account in one atomic unit.
type Card struct {
	ID         int64
	Number     string
	Expiry     string
	CVV        string
	ClientID   int64
	Blocked    bool
	LimitTotal decimal.Decimal
	LimitUsed  decimal.Decimal
}
