package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/server/config"
	"github.com/thaliumbank/thalium/internal/server/models"
)

func TestRequestLoan_RecordOnly(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.accounts.byNumber[1] = &models.Account{Number: 1, ClientID: 1, Balance: dec(t, "10.00")}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	audit := NewAuditService(db, rm, nopLogger{})
	s := NewLoanService(db, rm, audit, cfg, nopLogger{})

	issued := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	loan, err := s.Request(context.Background(), 1, 1, dec(t, "2000.00"), 24)
	if err != nil {
		t.Fatalf("Request error: %v", err)
	}
	if loan.Status != models.LoanStatusPending {
		t.Fatalf("status = %q, want %q", loan.Status, models.LoanStatusPending)
	}
	if loan.Rate.StringFixed(2) != "1.05" {
		t.Fatalf("rate = %s, want 1.05", loan.Rate.StringFixed(2))
	}
	if !loan.DueAt.Equal(issued.AddDate(1, 0, 0)) {
		t.Fatalf("due = %v, want issued+1y", loan.DueAt)
	}

	// No balance mutation and no journal entry.
	if got := rm.accounts.byNumber[1].Balance.StringFixed(2); got != "10.00" {
		t.Fatalf("balance = %s, want 10.00", got)
	}
	if len(rm.transactions.entries) != 0 {
		t.Fatalf("journal entries = %d, want 0", len(rm.transactions.entries))
	}
}

func TestRequestLoan_InvalidInput(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	audit := NewAuditService(db, rm, nopLogger{})
	s := NewLoanService(db, rm, audit, cfg, nopLogger{})

	if _, err := s.Request(context.Background(), 1, 1, dec(t, "-5.00"), 12); !errors.Is(err, common.ErrInvalidAmount) {
		t.Fatalf("negative amount: error = %v, want ErrInvalidAmount", err)
	}
	if _, err := s.Request(context.Background(), 1, 1, dec(t, "100.00"), 0); !errors.Is(err, common.ErrInvalidAmount) {
		t.Fatalf("zero term: error = %v, want ErrInvalidAmount", err)
	}
}
