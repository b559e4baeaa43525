package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Username     string         `db:"username" json:"username"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	FirstName    sql.NullString `db:"first_name" json:"first_name"`
	LastName     sql.NullString `db:"last_name" json:"last_name"`
	IsVerified   bool           `db:"is_verified" json:"is_verified"`
	VerifiedAt   *time.Time     `db:"verified_at" json:"verified_at,omitempty"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}
