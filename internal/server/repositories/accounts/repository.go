package accounts

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thaliumbank/thalium/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByNumber(ctx context.Context, number int64) (*models.Account, error)
	// GetPrimaryByClientID returns the client's Corrente account.
	GetPrimaryByClientID(ctx context.Context, clientID int64) (*models.Account, error)
	// GetForUpdate reads the account under a row lock; only valid inside a
	// transaction. Balances are always re-read this way before mutation.
	GetForUpdate(ctx context.Context, number int64) (*models.Account, error)
	UpdateBalance(ctx context.Context, number int64, balance decimal.Decimal) error
}
