package repository

import (
	"context"
	"time"

	"github.com/ccna35/simple-crud-app/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users              Users
	VerificationTokens VerificationTokens
	RefreshSessions    RefreshSessions
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:              newUserRepository(db),
		VerificationTokens: newVerificationTokenRepository(db),
		RefreshSessions:    newRefreshSessionRepository(db),
	}
}

type UpdateUserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetAll(ctx context.Context) ([]domain.User, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByCredentials(ctx context.Context, email string, passwordHash string) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error
}

// VerificationTokens is durable keyed storage for verification tokens.
// It performs no business validation; expiry filtering is the caller's call.
type VerificationTokens interface {
	Create(ctx context.Context, token *domain.VerificationToken) error
	GetByToken(ctx context.Context, token string) (*domain.VerificationToken, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type RefreshSessions interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
	GetByToken(ctx context.Context, refreshToken uuid.UUID) (*domain.RefreshSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
