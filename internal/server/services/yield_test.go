package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thaliumbank/thalium/internal/server/models"
)

func investment(t *testing.T, principal, rate string, appliedAt time.Time) *models.Investment {
	t.Helper()
	return &models.Investment{
		ID:         1,
		ClientID:   1,
		Instrument: "CDB",
		Principal:  decimal.RequireFromString(principal),
		AnnualRate: decimal.RequireFromString(rate),
		AppliedAt:  appliedAt,
	}
}

func TestValueAsOf_AtApplicationInstant(t *testing.T) {
	applied := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := investment(t, "1000.00", "10.15", applied)

	got := ValueAsOf(inv, applied)
	if !got.Equal(inv.Principal) {
		t.Fatalf("value at applied instant = %s, want principal %s", got, inv.Principal)
	}
}

func TestValueAsOf_PartialDayTruncates(t *testing.T) {
	applied := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := investment(t, "1000.00", "10.15", applied)

	// 47 hours in: exactly one whole day accrued.
	oneDay := ValueAsOf(inv, applied.Add(24*time.Hour))
	almostTwo := ValueAsOf(inv, applied.Add(47*time.Hour))
	if !oneDay.Equal(almostTwo) {
		t.Fatalf("47h value %s differs from 24h value %s", almostTwo, oneDay)
	}
	if !oneDay.GreaterThan(inv.Principal) {
		t.Fatalf("one day of yield must exceed principal: %s", oneDay)
	}
}

func TestValueAsOf_KnownValue(t *testing.T) {
	applied := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := investment(t, "1000.00", "10.15", applied)

	// 100 days: 1000 * (10.15/100/365) * 100 = 27.808..., rounded 27.81.
	got := ValueAsOf(inv, applied.AddDate(0, 0, 100))
	if got.StringFixed(2) != "1027.81" {
		t.Fatalf("value after 100 days = %s, want 1027.81", got.StringFixed(2))
	}
}

func TestValueAsOf_MonotonicNonDecreasing(t *testing.T) {
	applied := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := investment(t, "250.00", "8.50", applied)

	prev := ValueAsOf(inv, applied)
	for days := 1; days <= 400; days++ {
		cur := ValueAsOf(inv, applied.AddDate(0, 0, days))
		if cur.LessThan(prev) {
			t.Fatalf("value decreased at day %d: %s < %s", days, cur, prev)
		}
		prev = cur
	}
}

func TestValueAsOf_BeforeApplication(t *testing.T) {
	applied := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := investment(t, "250.00", "8.50", applied)

	got := ValueAsOf(inv, applied.Add(-time.Hour))
	if !got.Equal(inv.Principal) {
		t.Fatalf("value before application = %s, want principal", got)
	}
}
