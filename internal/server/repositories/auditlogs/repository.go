package auditlogs

import (
	"context"

	"github.com/thaliumbank/thalium/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
}
