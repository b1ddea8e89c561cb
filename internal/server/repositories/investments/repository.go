package investments

import (
	"context"

	"github.com/thaliumbank/thalium/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, inv *models.Investment) (*models.Investment, error)
	GetByID(ctx context.Context, id int64) (*models.Investment, error)
	// GetForUpdate locks the investment row; a redemption holds this lock
	// for its whole duration so a batch job cannot interleave with it.
	GetForUpdate(ctx context.Context, id int64) (*models.Investment, error)
	MarkRedeemed(ctx context.Context, id int64) error
	ListByClientID(ctx context.Context, clientID int64) ([]*models.Investment, error)
	ListActive(ctx context.Context) ([]*models.Investment, error)
}
