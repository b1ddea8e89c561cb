package verificationcodes

import (
	"context"
	"time"

	"github.com/thaliumbank/thalium/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, code *models.VerificationCode) (*models.VerificationCode, error)
	// Consume atomically marks the matching unused, unexpired code as used.
	// It returns false when no row matches, which covers wrong, replayed and
	// expired codes alike.
	Consume(ctx context.Context, email, code, purpose string, now time.Time) (bool, error)
}
