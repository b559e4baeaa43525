package domain

import (
	"time"

	"github.com/google/uuid"
)

// VerificationToken is a single-use email verification credential. At most
// one live token exists per user: issuing a new one removes its predecessors,
// and a successful verification removes the consumed record.
type VerificationToken struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
