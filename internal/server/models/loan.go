package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatusPending is the status every new loan request starts in. There is
// no repayment schedule engine; the record is write-once.
const LoanStatusPending = "pendente"

type Loan struct {
	ID            int64
	AccountNumber int64
	Principal     decimal.Decimal
	Rate          decimal.Decimal
	TermMonths    int
	IssuedAt      time.Time
	DueAt         time.Time
	Status        string
}
