package clients

import (
	"context"

	"github.com/thaliumbank/thalium/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	SetActive(ctx context.Context, id int64) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdatePINHash(ctx context.Context, id int64, hash string) error
}
