package transactions

import (
	"context"

	"github.com/thaliumbank/thalium/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	// ListByAccount returns journal entries newest first; entries sharing a
	// timestamp are ordered by descending id, so the most recently inserted
	// entry always appears first.
	ListByAccount(ctx context.Context, accountNumber int64, limit, offset int) ([]*models.Transaction, error)
}
