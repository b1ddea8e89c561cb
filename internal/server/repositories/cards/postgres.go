package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

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

const columns = `id, number, expiry, cvv, client_id, blocked, limit_total, limit_used`

func (r *PostgresRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {

	query :=
		`INSERT INTO cards (number, expiry, cvv, client_id, blocked, limit_total, limit_used)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		card.Number, card.Expiry, card.CVV, card.ClientID, card.Blocked, card.LimitTotal, card.LimitUsed).
		Scan(&card.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	query := `SELECT ` + columns + ` FROM cards WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id int64) (*models.Card, error) {
	query := `SELECT ` + columns + ` FROM cards WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByClientID(ctx context.Context, clientID int64) ([]*models.Card, error) {
	query := `SELECT ` + columns + ` FROM cards WHERE client_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Card
	for rows.Next() {
		card := &models.Card{}
		if err := rows.Scan(&card.ID, &card.Number, &card.Expiry, &card.CVV,
			&card.ClientID, &card.Blocked, &card.LimitTotal, &card.LimitUsed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) UpdateLimitUsed(ctx context.Context, id int64, limitUsed decimal.Decimal) error {
	query := `UPDATE cards SET limit_used = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, limitUsed)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	query := `UPDATE cards SET blocked = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, blocked)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Card, error) {
	card := &models.Card{}
	err := row.Scan(&card.ID, &card.Number, &card.Expiry, &card.CVV,
		&card.ClientID, &card.Blocked, &card.LimitTotal, &card.LimitUsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return card, nil
}
