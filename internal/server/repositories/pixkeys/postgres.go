package pixkeys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

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

const uniqueViolation = "23505"

func (r *PostgresRepository) Create(ctx context.Context, key *models.PixKey) (*models.PixKey, error) {

	query :=
		`INSERT INTO pix_keys (key_type, key, client_id)
         VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, key.Type, key.Key, key.ClientID).Scan(&key.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return key, nil
}

func (r *PostgresRepository) GetByKey(ctx context.Context, key string) (*models.PixKey, error) {
	query :=
		`SELECT id, key_type, key, client_id FROM pix_keys
		 WHERE key = $1
		 `

	pk := &models.PixKey{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(&pk.ID, &pk.Type, &pk.Key, &pk.ClientID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return pk, nil
}

func (r *PostgresRepository) ListByClientID(ctx context.Context, clientID int64) ([]*models.PixKey, error) {
	query :=
		`SELECT id, key_type, key, client_id FROM pix_keys
		 WHERE client_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.PixKey
	for rows.Next() {
		pk := &models.PixKey{}
		if err := rows.Scan(&pk.ID, &pk.Type, &pk.Key, &pk.ClientID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, pk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64, clientID int64) error {
	query :=
		`DELETE FROM pix_keys
		 WHERE id = $1 AND client_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, clientID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
