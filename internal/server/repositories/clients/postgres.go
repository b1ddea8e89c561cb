package clients

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

// uniqueViolation is the Postgres error code for duplicate cpf/email.
const uniqueViolation = "23505"

func (r *PostgresRepository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {

	query :=
		`INSERT INTO clients (name, cpf, email, password_hash, pin_hash, active)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		client.Name, client.CPF, client.Email, client.PasswordHash, client.PINHash, client.Active).
		Scan(&client.ID, &client.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return client, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	query :=
		`SELECT id, name, cpf, email, password_hash, pin_hash, active, created_at FROM clients
		 WHERE id = $1
		 `

	client := &models.Client{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID, &client.Name, &client.CPF, &client.Email,
		&client.PasswordHash, &client.PINHash, &client.Active, &client.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return client, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	query :=
		`SELECT id, name, cpf, email, password_hash, pin_hash, active, created_at FROM clients
		 WHERE email = $1
		 `

	client := &models.Client{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&client.ID, &client.Name, &client.CPF, &client.Email,
		&client.PasswordHash, &client.PINHash, &client.Active, &client.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return client, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id int64) error {
	query :=
		`UPDATE clients SET active = TRUE
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	query :=
		`UPDATE clients SET password_hash = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdatePINHash(ctx context.Context, id int64, hash string) error {
	query :=
		`UPDATE clients SET pin_hash = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
