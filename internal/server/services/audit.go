package services

import (
	"context"
	"database/sql"

	"github.com/thaliumbank/thalium/internal/logging"
	"github.com/thaliumbank/thalium/internal/server/models"
	"github.com/thaliumbank/thalium/internal/server/repositories/repomanager"
)

// AuditService appends audit trail entries for sensitive actions. Writes are
// best-effort: a failure is logged at Warn and swallowed, so auditing can
// never block or roll back the action it describes.
type AuditService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *AuditService {
	return &AuditService{db: db, repomanager: m, log: log}
}

// Record appends one audit entry outside any caller transaction. It never
// returns an error.
func (s *AuditService) Record(ctx context.Context, clientID int64, action, details, origin string) {
	repo := s.repomanager.AuditLogs(s.db)
	entry := &models.AuditLogEntry{
		ClientID: clientID,
		Action:   action,
		Details:  details,
		Origin:   origin,
	}
	if err := repo.Create(ctx, entry); err != nil {
		s.log.Warn(ctx, "audit write failed", "action", action, "client_id", clientID, "error", err)
	}
}
