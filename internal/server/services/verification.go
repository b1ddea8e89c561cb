package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/logging"
	"github.com/thaliumbank/thalium/internal/server/config"
	"github.com/thaliumbank/thalium/internal/server/models"
	"github.com/thaliumbank/thalium/internal/server/repositories/repomanager"
)

// VerificationService issues and checks short-lived one-time codes for
// account activation and password reset. Codes are 6 random decimal digits,
// valid for the configured window (15 minutes by default), and consumable
// exactly once.
type VerificationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	ttl         time.Duration
	now         func() time.Time
}

// NewVerificationService constructs a VerificationService.
func NewVerificationService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *VerificationService {
	return &VerificationService{
		db:          db,
		repomanager: m,
		log:         log,
		ttl:         cfg.CodeValidityDuration,
		now:         time.Now,
	}
}

// Issue creates a fresh code for the email and purpose. Issuing again before
// the previous code expires simply adds a new row; any matching unexpired,
// unused code is accepted by Verify.
func (s *VerificationService) Issue(ctx context.Context, email, purpose string) (*models.VerificationCode, error) {
	code, err := common.MakeRandDigits(6)
	if err != nil {
		s.log.Error(ctx, "code generation failed", "error", err)
		return nil, common.ErrorInternal
	}

	issuedAt := s.now()
	vc, err := s.repomanager.VerificationCodes(s.db).Create(ctx, &models.VerificationCode{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: issuedAt.Add(s.ttl),
	})
	if err != nil {
		s.log.Error(ctx, "code store failed", "error", err)
		return nil, common.ErrorInternal
	}
	return vc, nil
}

// Verify consumes the code. A wrong code, an expired code, and a code that
// was already used all fail the same way, with ErrInvalidOrExpiredCode.
func (s *VerificationService) Verify(ctx context.Context, email, code, purpose string) error {
	ok, err := s.repomanager.VerificationCodes(s.db).Consume(ctx, email, code, purpose, s.now())
	if err != nil {
		s.log.Error(ctx, "code consume failed", "error", err)
		return common.ErrorInternal
	}
	if !ok {
		return common.ErrInvalidOrExpiredCode
	}
	return nil
}
