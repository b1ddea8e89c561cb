package accounts

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

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (client_id, balance, opened_at, account_type)
         VALUES ($1, $2, $3, $4)
		 RETURNING number
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ClientID, account.Balance, account.OpenedAt, account.Type).Scan(&account.Number)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByNumber(ctx context.Context, number int64) (*models.Account, error) {
	query :=
		`SELECT number, client_id, balance, opened_at, account_type FROM accounts
		 WHERE number = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, number))
}

func (r *PostgresRepository) GetPrimaryByClientID(ctx context.Context, clientID int64) (*models.Account, error) {
	query :=
		`SELECT number, client_id, balance, opened_at, account_type FROM accounts
		 WHERE client_id = $1
		 ORDER BY number
		 LIMIT 1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, clientID))
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, number int64) (*models.Account, error) {
	query :=
		`SELECT number, client_id, balance, opened_at, account_type FROM accounts
		 WHERE number = $1
		 FOR UPDATE
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, number))
}

func (r *PostgresRepository) UpdateBalance(ctx context.Context, number int64, balance decimal.Decimal) error {
	query :=
		`UPDATE accounts SET balance = $2
		 WHERE number = $1
		 `

	res, err := r.db.ExecContext(ctx, query, number, balance)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(&account.Number, &account.ClientID, &account.Balance, &account.OpenedAt, &account.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}
