package auditlogs

import (
	"context"
	"fmt"

	"github.com/thaliumbank/thalium/internal/dbx"
	"github.com/thaliumbank/thalium/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {

	query :=
		`INSERT INTO audit_logs (client_id, action, details, origin)
         VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		entry.ClientID, entry.Action, entry.Details, entry.Origin)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
