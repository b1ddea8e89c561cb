package loans

import (
	"context"

	"github.com/thaliumbank/thalium/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, loan *models.Loan) (*models.Loan, error)
	ListByAccount(ctx context.Context, accountNumber int64) ([]*models.Loan, error)
}
