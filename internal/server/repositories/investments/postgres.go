package investments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thaliumbank/thalium/internal/common"
	"github.com/thaliumbank/thalium/internal/dbx"
	"github.com/thaliumbank/thalium/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `id, client_id, instrument, principal, applied_at, annual_rate, redeemed`

func (r *PostgresRepository) Create(ctx context.Context, inv *models.Investment) (*models.Investment, error) {

	query :=
		`INSERT INTO investments (client_id, instrument, principal, annual_rate, redeemed)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, applied_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		inv.ClientID, inv.Instrument, inv.Principal, inv.AnnualRate, inv.Redeemed).
		Scan(&inv.ID, &inv.AppliedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return inv, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Investment, error) {
	query := `SELECT ` + columns + ` FROM investments WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id int64) (*models.Investment, error) {
	query := `SELECT ` + columns + ` FROM investments WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// MarkRedeemed flips the redeemed flag exactly once; a second call reports
// ErrAlreadyRedeemed via the guard in the WHERE clause.
func (r *PostgresRepository) MarkRedeemed(ctx context.Context, id int64) error {
	query :=
		`UPDATE investments SET redeemed = TRUE
		 WHERE id = $1 AND NOT redeemed
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrAlreadyRedeemed
	}
	return nil
}

func (r *PostgresRepository) ListByClientID(ctx context.Context, clientID int64) ([]*models.Investment, error) {
	query := `SELECT ` + columns + ` FROM investments WHERE client_id = $1 ORDER BY id`
	return r.list(ctx, query, clientID)
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]*models.Investment, error) {
	query := `SELECT ` + columns + ` FROM investments WHERE NOT redeemed ORDER BY id`
	return r.list(ctx, query)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Investment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Investment
	for rows.Next() {
		inv := &models.Investment{}
		if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.Instrument, &inv.Principal,
			&inv.AppliedAt, &inv.AnnualRate, &inv.Redeemed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Investment, error) {
	inv := &models.Investment{}
	err := row.Scan(&inv.ID, &inv.ClientID, &inv.Instrument, &inv.Principal,
		&inv.AppliedAt, &inv.AnnualRate, &inv.Redeemed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inv, nil
}
