// Package services contains server-side business logic. This file implements
// BankingService, the engine behind every balance-mutating operation:
// deposits, withdrawals, transfers, bill and card-invoice payments. Each
// operation runs inside a single database transaction so that a failure at
// any step leaves no partial mutation behind.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/dbx"
	"github.com/thaliumbank/thalium/internal/logging"
	"github.com/thaliumbank/thalium/internal/money"
	"github.com/thaliumbank/thalium/internal/server/models"
	"github.com/thaliumbank/thalium/internal/server/repositories/repomanager"
)

// StatementPageSize is the number of journal entries per statement page.
const StatementPageSize = 20

// BankingService owns all account balance mutations. Balances are only ever
// read for mutation under a row lock (SELECT ... FOR UPDATE), and when an
// operation touches two accounts the locks are taken in ascending account
// number order so concurrent transfers sharing an account cannot deadlock.
type BankingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	audit       *AuditService
	log         logging.Logger
}

// NewBankingService constructs a BankingService.
func NewBankingService(db *sql.DB, m repomanager.RepositoryManager, audit *AuditService, log logging.Logger) *BankingService {
	return &BankingService{db: db, repomanager: m, audit: audit, log: log}
}

// PrimaryAccount returns the client's Corrente account.
func (s *BankingService) PrimaryAccount(ctx context.Context, clientID int64) (*models.Account, error) {
	acc, err := s.repomanager.Accounts(s.db).GetPrimaryByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return acc, nil
}

// Deposit credits the account and appends a journal entry. Returns the new
// balance.
func (s *BankingService) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := money.ValidatePositive(amount); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		acc, err := s.repomanager.Accounts(tx).GetForUpdate(ctx, accountNumber)
		if err != nil {
			return err
		}
		balance = acc.Balance.Add(amount)
		if err := s.repomanager.Accounts(tx).UpdateBalance(ctx, acc.Number, balance); err != nil {
			return err
		}
		_, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			AccountNumber: acc.Number,
			Type:          models.TxDeposit,
			Amount:        amount,
		})
		return err
	})
	if err != nil {
		return decimal.Zero, s.translate(ctx, err, "deposit")
	}
	return balance, nil
}

// Withdraw debits the account and appends a journal entry. Returns the new
// balance. Fails with ErrInsufficientFunds when the balance does not cover
// the amount, leaving the balance untouched.
func (s *BankingService) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.debit(ctx, accountNumber, amount, models.TxWithdrawal, "", "")
}

// PayBill debits the account for a bill payment. The description carries the
// bill reference as shown on the statement.
func (s *BankingService) PayBill(ctx context.Context, accountNumber int64, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	return s.debit(ctx, accountNumber, amount, models.TxBillPayment, description, "Contas")
}

// debit is the shared single-account debit path behind Withdraw and PayBill.
func (s *BankingService) debit(ctx context.Context, accountNumber int64, amount decimal.Decimal, txType, description, category string) (decimal.Decimal, error) {
	if err := money.ValidatePositive(amount); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		acc, err := s.repomanager.Accounts(tx).GetForUpdate(ctx, accountNumber)
		if err != nil {
			return err
		}
		if acc.Balance.LessThan(amount) {
			return common.ErrInsufficientFunds
		}
		balance = acc.Balance.Sub(amount)
		if err := s.repomanager.Accounts(tx).UpdateBalance(ctx, acc.Number, balance); err != nil {
			return err
		}
		_, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			AccountNumber: acc.Number,
			Type:          txType,
			Amount:        amount.Neg(),
			Description:   description,
			Category:      category,
		})
		return err
	})
	if err != nil {
		return decimal.Zero, s.translate(ctx, err, txType)
	}
	return balance, nil
}

// Transfer moves amount from the sender's account to the recipient resolved
// from recipientIdentifier (PIX key first, then email). The sender must have
// a transaction PIN configured and supply it. Exactly two journal entries
// are written, one per account, equal in absolute value and opposite in
// sign. Returns the sender's new balance.
func (s *BankingService) Transfer(ctx context.Context, senderNumber int64, recipientIdentifier string, amount decimal.Decimal, description, category, pin string) (decimal.Decimal, error) {
	if err := money.ValidatePositive(amount); err != nil {
		return decimal.Zero, err
	}

	sender, err := s.repomanager.Accounts(s.db).GetByNumber(ctx, senderNumber)
	if err != nil {
		return decimal.Zero, s.translate(ctx, err, "transfer")
	}
	if err := s.checkPIN(ctx, sender.ClientID, pin); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		recipient, viaPix, err := resolveRecipient(ctx, tx, s.repomanager, recipientIdentifier)
		if err != nil {
			return err
		}
		if recipient.Number == sender.Number {
			return common.ErrSelfTransfer
		}

		// Lock both rows in ascending number order. The balances used below
		// are the ones read under the lock, not the earlier unlocked read.
		first, second := sender.Number, recipient.Number
		if first > second {
			first, second = second, first
		}
		accRepo := s.repomanager.Accounts(tx)
		a1, err := accRepo.GetForUpdate(ctx, first)
		if err != nil {
			return err
		}
		a2, err := accRepo.GetForUpdate(ctx, second)
		if err != nil {
			return err
		}
		lockedSender, lockedRecipient := a1, a2
		if a1.Number != sender.Number {
			lockedSender, lockedRecipient = a2, a1
		}

		if lockedSender.Balance.LessThan(amount) {
			return common.ErrInsufficientFunds
		}

		balance = lockedSender.Balance.Sub(amount)
		if err := accRepo.UpdateBalance(ctx, lockedSender.Number, balance); err != nil {
			return err
		}
		if err := accRepo.UpdateBalance(ctx, lockedRecipient.Number, lockedRecipient.Balance.Add(amount)); err != nil {
			return err
		}

		sentType, receivedType := models.TxTransferSent, models.TxTransferReceived
		if viaPix {
			sentType, receivedType = models.TxPixSent, models.TxPixReceived
		}

		txRepo := s.repomanager.Transactions(tx)
		if _, err := txRepo.Create(ctx, &models.Transaction{
			AccountNumber: lockedSender.Number,
			Type:          sentType,
			Amount:        amount.Neg(),
			Description:   description,
			Category:      category,
		}); err != nil {
			return err
		}
		_, err = txRepo.Create(ctx, &models.Transaction{
			AccountNumber: lockedRecipient.Number,
			Type:          receivedType,
			Amount:        amount,
			Description:   description,
			Category:      category,
		})
		return err
	})
	if err != nil {
		return decimal.Zero, s.translate(ctx, err, "transfer")
	}

	s.audit.Record(ctx, sender.ClientID, "transfer",
		fmt.Sprintf("sent %s to %s", money.String(amount), recipientIdentifier), "")
	return balance, nil
}

// PayCardInvoice pays down the card's open invoice: debits the owner's
// primary account and reduces the card's used limit in the same atomic unit.
// The amount must be positive and no greater than the used limit. Returns
// the account's new balance.
func (s *BankingService) PayCardInvoice(ctx context.Context, clientID, cardID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := money.ValidatePositive(amount); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		card, err := s.repomanager.Cards(tx).GetForUpdate(ctx, cardID)
		if err != nil {
			return err
		}
		if card.ClientID != clientID {
			return common.ErrorNotFound
		}
		if amount.GreaterThan(card.LimitUsed) {
			return common.ErrInvalidAmount
		}

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

		balance = locked.Balance.Sub(amount)
		if err := s.repomanager.Accounts(tx).UpdateBalance(ctx, locked.Number, balance); err != nil {
			return err
		}
		if err := s.repomanager.Cards(tx).UpdateLimitUsed(ctx, card.ID, card.LimitUsed.Sub(amount)); err != nil {
			return err
		}
		_, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			AccountNumber: locked.Number,
			Type:          models.TxInvoicePayment,
			Amount:        amount.Neg(),
			Description:   fmt.Sprintf("Cartão final %s", cardSuffix(card.Number)),
			Category:      "Cartão",
		})
		return err
	})
	if err != nil {
		return decimal.Zero, s.translate(ctx, err, "invoice payment")
	}

	s.audit.Record(ctx, clientID, "invoice_payment",
		fmt.Sprintf("paid %s on card %d", money.String(amount), cardID), "")
	return balance, nil
}

// GetStatement returns one page of the account's journal, newest entries
// first. Page numbering starts at 1.
func (s *BankingService) GetStatement(ctx context.Context, accountNumber int64, page int) ([]*models.Transaction, error) {
	if page < 1 {
		page = 1
	}
	if _, err := s.repomanager.Accounts(s.db).GetByNumber(ctx, accountNumber); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	entries, err := s.repomanager.Transactions(s.db).ListByAccount(ctx, accountNumber, StatementPageSize, (page-1)*StatementPageSize)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return entries, nil
}

// checkPIN verifies the 4-digit transaction PIN. A client without a
// configured PIN cannot transfer at all.
func (s *BankingService) checkPIN(ctx context.Context, clientID int64, pin string) error {
	client, err := s.repomanager.Clients(s.db).GetByID(ctx, clientID)
	if err != nil {
		return s.translate(ctx, err, "pin check")
	}
	if client.PINHash == "" {
		return common.ErrAuthentication
	}
	if bcrypt.CompareHashAndPassword([]byte(client.PINHash), []byte(pin)) != nil {
		return common.ErrAuthentication
	}
	return nil
}

// translate maps storage-level failures onto the service error taxonomy.
// Taxonomy sentinels pass through unchanged; anything else is logged and
// surfaced as ErrorInternal so the caller never sees driver details.
func (s *BankingService) translate(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrConflict),
		errors.Is(err, common.ErrInvalidAmount),
		errors.Is(err, common.ErrInsufficientFunds),
		errors.Is(err, common.ErrSelfTransfer),
		errors.Is(err, common.ErrRecipientNotFound),
		errors.Is(err, common.ErrAuthentication),
		errors.Is(err, common.ErrAlreadyRedeemed),
		errors.Is(err, common.ErrMinimumNotMet),
		errors.Is(err, common.ErrInvalidOrExpiredCode):
		return err
	default:
		s.log.Error(ctx, "storage failure", "op", op, "error", err)
		return common.ErrorInternal
	}
}

func cardSuffix(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}
