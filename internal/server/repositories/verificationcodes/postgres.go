package verificationcodes

import (
	"context"
	"fmt"
	"time"

	"github.com/thaliumbank/thalium/internal/dbx"
	"github.com/thaliumbank/thalium/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, code *models.VerificationCode) (*models.VerificationCode, error) {

	query :=
		`INSERT INTO verification_codes (email, code, purpose, expires_at)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		code.Email, code.Code, code.Purpose, code.ExpiresAt).
		Scan(&code.ID, &code.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return code, nil
}

// Consume flips used in a single statement, so two concurrent verifications
// of the same code cannot both succeed.
func (r *PostgresRepository) Consume(ctx context.Context, email, code, purpose string, now time.Time) (bool, error) {
	query :=
		`UPDATE verification_codes SET used = TRUE
		 WHERE email = $1 AND code = $2 AND purpose = $3
		   AND NOT used AND expires_at > $4
		 `

	res, err := r.db.ExecContext(ctx, query, email, code, purpose, now)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}
