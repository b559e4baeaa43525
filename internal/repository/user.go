package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ccna35/simple-crud-app/internal/db"
	"github.com/ccna35/simple-crud-app/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
	INSERT INTO user (id, username, email, password_hash, first_name, last_name)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
	)

	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	const query = `
	SELECT id, username, email, first_name, last_name, is_verified, verified_at, created_at, updated_at
	FROM user WHERE deleted_at IS NULL;
	`

	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("select users failed: %w", err)
	}

	return users, nil
}

func (r *userRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
	SELECT id, username, email, password_hash, first_name, last_name, is_verified, verified_at, created_at, updated_at, deleted_at
	FROM user WHERE id = uuid_to_bin(?) AND deleted_at IS NULL;
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user by id failed: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
	SELECT id, username, email, password_hash, first_name, last_name, is_verified, verified_at, created_at, updated_at, deleted_at
	FROM user WHERE email = ? AND deleted_at IS NULL;
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user by email failed: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByCredentials(ctx context.Context, email string, passwordHash string) (*domain.User, error) {
	const query = `
	SELECT id, username, email, first_name, last_name, is_verified, verified_at, created_at, updated_at
	FROM user WHERE email = ? AND password_hash = ? AND deleted_at IS NULL;
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email, passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user by credentials failed: %w", err)
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) error {
	setValues := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)

	if input.Username != nil {
		setValues = append(setValues, "username = ?")
		args = append(args, *input.Username)
	}
	if input.Email != nil {
		setValues = append(setValues, "email = ?")
		args = append(args, *input.Email)
	}
	if input.FirstName != nil {
		setValues = append(setValues, "first_name = ?")
		args = append(args, *input.FirstName)
	}
	if input.LastName != nil {
		setValues = append(setValues, "last_name = ?")
		args = append(args, *input.LastName)
	}

	if len(setValues) == 0 {
		return domain.ErrNoRowsAffected
	}

	query := fmt.Sprintf(
		"UPDATE user SET %s WHERE id = uuid_to_bin(?) AND deleted_at IS NULL",
		strings.Join(setValues, ", "),
	)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("update user failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `
	UPDATE user SET deleted_at = now() WHERE id = uuid_to_bin(?) AND deleted_at IS NULL;
	`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) MarkVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error {
	const op = "repository.user.MarkVerified"

	const query = `
	UPDATE user SET is_verified = TRUE, verified_at = ? WHERE id = uuid_to_bin(?) AND deleted_at IS NULL;
	`

	res, err := r.db.ExecContext(ctx, query, verifiedAt, id)
	if err != nil {
		return fmt.Errorf("%s: update user failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
