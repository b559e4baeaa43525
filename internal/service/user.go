package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ccna35/simple-crud-app/internal/domain"
	"github.com/ccna35/simple-crud-app/internal/repository"
	"github.com/ccna35/simple-crud-app/pkg/auth"
	"github.com/ccna35/simple-crud-app/pkg/hash"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userService struct {
	userRepository           repository.Users
	refreshSessionRepository repository.RefreshSessions
	verifications            Verifications
	hasher                   hash.PasswordHasher
	tokenManager             auth.TokenManager
	log                      *zap.SugaredLogger
}

func newUserService(
	userRepository repository.Users,
	refreshSessionRepository repository.RefreshSessions,
	verifications Verifications,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	log *zap.SugaredLogger,
) *userService {
	return &userService{
		userRepository:           userRepository,
		refreshSessionRepository: refreshSessionRepository,
		verifications:            verifications,
		hasher:                   hasher,
		tokenManager:             tokenManager,
		log:                      log,
	}
}

type SignUpInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type SignInInput struct {
	Email    string
	Password string
}

type Tokens struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken uuid.UUID
	RefreshTTL   time.Duration
}

// SignUp creates the user and kicks off email verification. The verification
// email is best effort: its failure is logged and does not fail registration.
func (s *userService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id failed: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		FirstName: sql.NullString{
			String: input.FirstName,
			Valid:  input.FirstName != "",
		},
		LastName: sql.NullString{
			String: input.LastName,
			Valid:  input.LastName != "",
		},
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrUserAlreadyExist
		}
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	if sent := s.verifications.SendVerificationEmail(ctx, user.ID, user.Email); !sent {
		s.log.Warnw("verification email not sent on sign up", "user_id", user.ID)
	}

	return user, nil
}

func (s *userService) SignIn(ctx context.Context, input SignInInput, userAgent string, userIP string) (*Tokens, error) {
	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user, err := s.userRepository.GetByCredentials(ctx, input.Email, passwordHash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by credentials failed: %w", err)
	}

	return s.createSession(ctx, &user.ID, &userAgent, &userIP)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string, userAgent string, userIP string) (*Tokens, error) {
	tokenID, err := s.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	session, err := s.refreshSessionRepository.GetByToken(ctx, *tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get refresh session failed: %w", err)
	}

	if session.ExpiresIn.Before(time.Now()) {
		return nil, ErrSessionExpired
	}

	// rotate: old session dies, a new one is issued
	if err := s.refreshSessionRepository.Delete(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("delete refresh session failed: %w", err)
	}

	return s.createSession(ctx, &session.UserID, &userAgent, &userIP)
}

func (s *userService) createSession(ctx context.Context, userID *uuid.UUID, userAgent *string, userIP *string) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(userID)
	if err != nil {
		return &res, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = s.tokenManager.NewRefreshToken()
	if err != nil {
		return &res, fmt.Errorf("generate refresh token failed: %w", err)
	}

	refreshSessionID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate refresh session id failed: %w", err)
	}
	refreshSession := &domain.RefreshSession{
		ID:           refreshSessionID,
		UserID:       *userID,
		RefreshToken: res.RefreshToken,
		UserAgent:    *userAgent,
		IP:           *userIP,
		ExpiresIn:    time.Now().Add(res.RefreshTTL),
	}

	if err := s.refreshSessionRepository.Create(ctx, refreshSession); err != nil {
		return nil, fmt.Errorf("create refresh session failed: %w", err)
	}

	return &res, nil
}

func (s *userService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.userRepository.GetAll(ctx)
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input repository.UpdateUserInput) error {
	if err := s.userRepository.Update(ctx, id, input); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoRowsAffected):
			return ErrUserNotFound
		case errors.Is(err, domain.ErrDuplicateEntry):
			return ErrUserAlreadyExist
		}
		return err
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
