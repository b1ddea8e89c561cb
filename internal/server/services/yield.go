package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thaliumbank/thalium/internal/server/models"
)

var (
	hundred     = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromInt(365)
)

// ValueAsOf returns principal plus simple interest accrued up to the given
// instant. Elapsed time counts in whole days, truncated, so a position held
// 47 hours has earned exactly one day of yield and ValueAsOf at the applied
// instant equals the principal. The daily rate is annualRate/100/365 and the
// result is rounded to two decimal places.
func ValueAsOf(inv *models.Investment, at time.Time) decimal.Decimal {
	days := int64(at.Sub(inv.AppliedAt).Hours() / 24)
	if days <= 0 {
		return inv.Principal
	}
	dailyRate := inv.AnnualRate.Div(hundred).Div(daysPerYear)
	yield := inv.Principal.Mul(dailyRate).Mul(decimal.NewFromInt(days)).Round(2)
	return inv.Principal.Add(yield)
}
