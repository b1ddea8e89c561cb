package loans

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

func (r *PostgresRepository) Create(ctx context.Context, loan *models.Loan) (*models.Loan, error) {

	query :=
		`INSERT INTO loans (account_number, principal, rate, term_months, issued_at, due_at, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		loan.AccountNumber, loan.Principal, loan.Rate, loan.TermMonths,
		loan.IssuedAt, loan.DueAt, loan.Status).Scan(&loan.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return loan, nil
}

func (r *PostgresRepository) ListByAccount(ctx context.Context, accountNumber int64) ([]*models.Loan, error) {
	query :=
		`SELECT id, account_number, principal, rate, term_months, issued_at, due_at, status FROM loans
		 WHERE account_number = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Loan
	for rows.Next() {
		loan := &models.Loan{}
		if err := rows.Scan(&loan.ID, &loan.AccountNumber, &loan.Principal, &loan.Rate,
			&loan.TermMonths, &loan.IssuedAt, &loan.DueAt, &loan.Status); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
