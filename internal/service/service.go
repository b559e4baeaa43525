package service

import (
	"context"
	"time"

	"github.com/ccna35/simple-crud-app/internal/config"
	"github.com/ccna35/simple-crud-app/internal/domain"
	"github.com/ccna35/simple-crud-app/internal/repository"
	"github.com/ccna35/simple-crud-app/pkg/auth"
	"github.com/ccna35/simple-crud-app/pkg/hash"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Services struct {
	Users         Users
	Verifications Verifications
}

type Deps struct {
	Logger       *zap.SugaredLogger
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	Notifier     Notifier
	Redis        redis.UniversalClient
	Repos        *repository.Repositories
}

func NewServices(deps Deps) *Services {
	verifications := newVerificationService(
		deps.Repos.VerificationTokens,
		deps.Repos.Users,
		deps.Notifier,
		deps.Redis,
		deps.Config.Verification,
		deps.Logger,
	)

	return &Services{
		Users: newUserService(
			deps.Repos.Users,
			deps.Repos.RefreshSessions,
			verifications,
			deps.Hasher,
			deps.TokenManager,
			deps.Logger,
		),
		Verifications: verifications,
	}
}

// Notifier dispatches a verification email carrying the link the user has to
// follow. Dispatch may be asynchronous; an error means the message was not
// accepted for delivery.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, email string, verificationURL string, expiresIn time.Duration) error
}

type Users interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, input SignInInput, userAgent string, userIP string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string, userAgent string, userIP string) (*Tokens, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input repository.UpdateUserInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Verifications interface {
	GenerateVerificationToken(ctx context.Context, userID uuid.UUID) (string, error)
	SendVerificationEmail(ctx context.Context, userID uuid.UUID, email string) bool
	VerifyUser(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, userID uuid.UUID) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}
