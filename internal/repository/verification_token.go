package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ccna35/simple-crud-app/internal/db"
	"github.com/ccna35/simple-crud-app/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type verificationTokenRepository struct {
	db *sqlx.DB
}

func newVerificationTokenRepository(db *sqlx.DB) *verificationTokenRepository {
	return &verificationTokenRepository{
		db: db,
	}
}

func (r *verificationTokenRepository) Create(ctx context.Context, token *domain.VerificationToken) error {
	const op = "repository.verificationToken.Create"

	const query = `
    INSERT INTO verification_token (id, user_id, token, expires_at)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:user_id), :token, :expires_at)
    `

	res, err := r.db.NamedExecContext(ctx, query, token)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert verification token failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *verificationTokenRepository) GetByToken(ctx context.Context, token string) (*domain.VerificationToken, error) {
	const op = "repository.verificationToken.GetByToken"

	// No expiry filter here: the service decides what an expired row means.
	const query = `
    SELECT id, user_id, token, expires_at, created_at
    FROM verification_token
    WHERE token = ?
    `

	var record domain.VerificationToken
	if err := r.db.GetContext(ctx, &record, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select verification token failed: %w", op, err)
	}

	return &record, nil
}

func (r *verificationTokenRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	const op = "repository.verificationToken.DeleteByToken"

	const query = `DELETE FROM verification_token WHERE token = ?`

	res, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return false, fmt.Errorf("%s: delete verification token failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows > 0, nil
}

func (r *verificationTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	const op = "repository.verificationToken.DeleteByUserID"

	const query = `DELETE FROM verification_token WHERE user_id = uuid_to_bin(?)`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: delete verification tokens by user failed: %w", op, err)
	}

	return nil
}

func (r *verificationTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "repository.verificationToken.DeleteExpired"

	const query = `DELETE FROM verification_token WHERE expires_at < ?`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("%s: delete expired verification tokens failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}
