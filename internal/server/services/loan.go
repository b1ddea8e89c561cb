package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/logging"
	"github.com/thaliumbank/thalium/internal/money"
	"github.com/thaliumbank/thalium/internal/server/config"
	"github.com/thaliumbank/thalium/internal/server/models"
	"github.com/thaliumbank/thalium/internal/server/repositories/repomanager"
)

// LoanService records loan requests. A request is a write-once record: no
// balance is credited and no repayment schedule exists. Requests start in
// the pending status and come due one year after issuance.
type LoanService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	audit       *AuditService
	log         logging.Logger
	rate        decimal.Decimal
	now         func() time.Time
}

// NewLoanService constructs a LoanService with the configured rate.
func NewLoanService(db *sql.DB, m repomanager.RepositoryManager, audit *AuditService, cfg *config.Config, log logging.Logger) *LoanService {
	return &LoanService{
		db:          db,
		repomanager: m,
		audit:       audit,
		log:         log,
		rate:        cfg.LoanRate,
		now:         time.Now,
	}
}

// Request creates the loan record for the client's account.
func (s *LoanService) Request(ctx context.Context, clientID, accountNumber int64, amount decimal.Decimal, termMonths int) (*models.Loan, error) {
	if err := money.ValidatePositive(amount); err != nil {
		return nil, err
	}
	if termMonths <= 0 {
		return nil, common.ErrInvalidAmount
	}

	issuedAt := s.now()
	loan, err := s.repomanager.Loans(s.db).Create(ctx, &models.Loan{
		AccountNumber: accountNumber,
		Principal:     amount,
		Rate:          s.rate,
		TermMonths:    termMonths,
		IssuedAt:      issuedAt,
		DueAt:         issuedAt.AddDate(1, 0, 0),
		Status:        models.LoanStatusPending,
	})
	if err != nil {
		s.log.Error(ctx, "loan create failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.audit.Record(ctx, clientID, "loan_request",
		fmt.Sprintf("account %d requested %s over %d months", accountNumber, money.String(amount), termMonths), "")
	return loan, nil
}

// ListByAccount returns the account's loan requests.
func (s *LoanService) ListByAccount(ctx context.Context, accountNumber int64) ([]*models.Loan, error) {
	list, err := s.repomanager.Loans(s.db).ListByAccount(ctx, accountNumber)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}
