package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/logging"
	"github.com/thaliumbank/thalium/internal/server/models"
	"github.com/thaliumbank/thalium/internal/server/repositories/repomanager"
)

// PixService manages a client's PIX keys. Keys are alternate identifiers
// only; resolution to an account happens in the transfer path.
type PixService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	audit       *AuditService
	log         logging.Logger
}

// NewPixService constructs a PixService.
func NewPixService(db *sql.DB, m repomanager.RepositoryManager, audit *AuditService, log logging.Logger) *PixService {
	return &PixService{db: db, repomanager: m, audit: audit, log: log}
}

// RegisterKey adds a key of the given type for the client. For the random
// type the key value is generated as a UUID and the passed value is ignored.
// A key already registered, by anyone, fails with ErrConflict.
func (s *PixService) RegisterKey(ctx context.Context, clientID int64, keyType, value string) (*models.PixKey, error) {
	switch keyType {
	case models.PixKeyCPF, models.PixKeyEmail:
		if value == "" {
			return nil, common.ErrorInternal
		}
	case models.PixKeyRandom:
		value = uuid.NewString()
	default:
		return nil, common.ErrorNotFound
	}

	key, err := s.repomanager.PixKeys(s.db).Create(ctx, &models.PixKey{
		Type:     keyType,
		Key:      value,
		ClientID: clientID,
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		s.log.Error(ctx, "pix key create failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.audit.Record(ctx, clientID, "pix_key_register", keyType, "")
	return key, nil
}

// List returns the client's keys.
func (s *PixService) List(ctx context.Context, clientID int64) ([]*models.PixKey, error) {
	keys, err := s.repomanager.PixKeys(s.db).ListByClientID(ctx, clientID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return keys, nil
}

// Delete removes one of the client's own keys. Deleting a key that is not
// theirs, or does not exist, fails with ErrorNotFound.
func (s *PixService) Delete(ctx context.Context, clientID, keyID int64) error {
	err := s.repomanager.PixKeys(s.db).Delete(ctx, keyID, clientID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	s.audit.Record(ctx, clientID, "pix_key_delete", "", "")
	return nil
}
