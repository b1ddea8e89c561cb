package pixkeys

import (
	"context"

	"github.com/thaliumbank/thalium/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, key *models.PixKey) (*models.PixKey, error)
	GetByKey(ctx context.Context, key string) (*models.PixKey, error)
	ListByClientID(ctx context.Context, clientID int64) ([]*models.PixKey, error)
	Delete(ctx context.Context, id int64, clientID int64) error
}
