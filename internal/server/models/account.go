package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTypeCorrente is the primary account every client gets at
// registration; exactly one per client.
const AccountTypeCorrente = "Corrente"

// Account balance is mutated only by the banking service inside a database
// transaction, never directly. The schema enforces balance >= 0 as well.
type Account struct {
	Number   int64
	ClientID int64
	Balance  decimal.Decimal
	OpenedAt time.Time
	Type     string
}
