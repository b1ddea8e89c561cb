package cards

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thaliumbank/thalium/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	ListByClientID(ctx context.Context, clientID int64) ([]*models.Card, error)
	// GetForUpdate locks the card row for an invoice payment; only valid
	// inside a transaction.
	GetForUpdate(ctx context.Context, id int64) (*models.Card, error)
	UpdateLimitUsed(ctx context.Context, id int64, limitUsed decimal.Decimal) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
}
