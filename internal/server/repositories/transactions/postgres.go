package transactions

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

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {

	if tx.Category == "" {
		tx.Category = models.CategoryDefault
	}

	query :=
		`INSERT INTO transactions (account_number, tx_type, amount, description, category)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		tx.AccountNumber, tx.Type, tx.Amount, tx.Description, tx.Category).
		Scan(&tx.ID, &tx.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tx, nil
}

func (r *PostgresRepository) ListByAccount(ctx context.Context, accountNumber int64, limit, offset int) ([]*models.Transaction, error) {
	query :=
		`SELECT id, account_number, tx_type, amount, created_at, description, category FROM transactions
		 WHERE account_number = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3
		 `

	rows, err := r.db.QueryContext(ctx, query, accountNumber, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Transaction
	for rows.Next() {
		tx := &models.Transaction{}
		if err := rows.Scan(&tx.ID, &tx.AccountNumber, &tx.Type, &tx.Amount, &tx.CreatedAt, &tx.Description, &tx.Category); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
