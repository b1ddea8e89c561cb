package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a fixed-income position. Principal and AppliedAt are
// immutable after creation; Redeemed transitions false to true exactly once.
// AnnualRate is a percentage, e.g. 10.15 for 10.15% a year.
type Investment struct {
	ID         int64
	ClientID   int64
	Instrument string
	Principal  decimal.Decimal
	AppliedAt  time.Time
	AnnualRate decimal.Decimal
	Redeemed   bool
}
