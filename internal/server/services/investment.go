package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/dbx"
	"github.com/thaliumbank/thalium/internal/logging"
	"github.com/thaliumbank/thalium/internal/money"
	"github.com/thaliumbank/thalium/internal/server/config"
	"github.com/thaliumbank/thalium/internal/server/models"
	"github.com/thaliumbank/thalium/internal/server/repositories/repomanager"
)

// InvestmentService handles fixed-income subscriptions and redemptions. Both
// operations move money between the client's primary account and an
// Investment row inside one transaction.
type InvestmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	banking     *BankingService
	audit       *AuditService
	log         logging.Logger
	minimum     decimal.Decimal
	annualRate  decimal.Decimal
	now         func() time.Time
}

// NewInvestmentService constructs an InvestmentService using the configured
// subscription floor and annual rate.
func NewInvestmentService(db *sql.DB, m repomanager.RepositoryManager, banking *BankingService, audit *AuditService, cfg *config.Config, log logging.Logger) *InvestmentService {
	return &InvestmentService{
		db:          db,
		repomanager: m,
		banking:     banking,
		audit:       audit,
		log:         log,
		minimum:     cfg.InvestmentMinimum,
		annualRate:  cfg.InvestmentAnnualRate,
		now:         time.Now,
	}
}

// Subscribe debits the client's primary account and opens a position in the
// given instrument. Fails with ErrMinimumNotMet below the configured floor.
func (s *InvestmentService) Subscribe(ctx context.Context, clientID int64, amount decimal.Decimal, instrument string) (*models.Investment, error) {
	if err := money.ValidatePositive(amount); err != nil {
		return nil, err
	}
	if amount.LessThan(s.minimum) {
		return nil, common.ErrMinimumNotMet
	}

	var inv *models.Investment
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		acc, err := s.repomanager.Accounts(tx).GetPrimaryByClientID(ctx, clientID)
		if err != nil {
			return err
		}
		locked, err := s.repomanager.Accounts(tx).GetForUpdate(ctx, acc.Number)
		if err != nil {
			return err
		}
		if locked.Balance.LessThan(amount) {
			return common.ErrInsufficientFunds
		}
		if err := s.repomanager.Accounts(tx).UpdateBalance(ctx, locked.Number, locked.Balance.Sub(amount)); err != nil {
			return err
		}
		inv, err = s.repomanager.Investments(tx).Create(ctx, &models.Investment{
			ClientID:   clientID,
			Instrument: instrument,
			Principal:  amount,
			AnnualRate: s.annualRate,
		})
		if err != nil {
			return err
		}
		_, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			AccountNumber: locked.Number,
			Type:          models.TxInvestment,
			Amount:        amount.Neg(),
			Description:   instrument,
			Category:      "Investimentos",
		})
		return err
	})
	if err != nil {
		return nil, s.banking.translate(ctx, err, "investment subscribe")
	}

	s.audit.Record(ctx, clientID, "investment_subscribe",
		fmt.Sprintf("applied %s in %s", money.String(amount), instrument), "")
	return inv, nil
}

// Redeem closes the position: computes the current value, flips the redeemed
// flag, and credits principal plus yield back to the primary account. The
// investment row is locked for the whole operation, so a concurrent redeem
// of the same position fails with ErrAlreadyRedeemed.
func (s *InvestmentService) Redeem(ctx context.Context, clientID, investmentID int64) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inv, err := s.repomanager.Investments(tx).GetForUpdate(ctx, investmentID)
		if err != nil {
			return err
		}
		if inv.ClientID != clientID {
			return common.ErrorNotFound
		}
		if inv.Redeemed {
			return common.ErrAlreadyRedeemed
		}

		value = ValueAsOf(inv, s.now())

		if err := s.repomanager.Investments(tx).MarkRedeemed(ctx, inv.ID); err != nil {
			return err
		}

		acc, err := s.repomanager.Accounts(tx).GetPrimaryByClientID(ctx, clientID)
		if err != nil {
			return err
		}
		locked, err := s.repomanager.Accounts(tx).GetForUpdate(ctx, acc.Number)
		if err != nil {
			return err
		}
		if err := s.repomanager.Accounts(tx).UpdateBalance(ctx, locked.Number, locked.Balance.Add(value)); err != nil {
			return err
		}
		_, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			AccountNumber: locked.Number,
			Type:          models.TxRedemption,
			Amount:        value,
			Description:   inv.Instrument,
			Category:      "Investimentos",
		})
		return err
	})
	if err != nil {
		return decimal.Zero, s.banking.translate(ctx, err, "investment redeem")
	}

	s.audit.Record(ctx, clientID, "investment_redeem",
		fmt.Sprintf("redeemed %s from investment %d", money.String(value), investmentID), "")
	return value, nil
}

// List returns all of the client's positions, open and redeemed.
func (s *InvestmentService) List(ctx context.Context, clientID int64) ([]*models.Investment, error) {
	list, err := s.repomanager.Investments(s.db).ListByClientID(ctx, clientID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}
