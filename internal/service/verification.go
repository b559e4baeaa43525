package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ccna35/simple-crud-app/internal/config"
	"github.com/ccna35/simple-crud-app/internal/domain"
	"github.com/ccna35/simple-crud-app/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type verificationService struct {
	tokenRepository repository.VerificationTokens
	userRepository  repository.Users
	notifier        Notifier
	redis           redis.UniversalClient
	config          config.VerificationConfig
	log             *zap.SugaredLogger

	// injected for deterministic expiry checks in tests
	now func() time.Time
}

func newVerificationService(
	tokenRepository repository.VerificationTokens,
	userRepository repository.Users,
	notifier Notifier,
	redisClient redis.UniversalClient,
	config config.VerificationConfig,
	log *zap.SugaredLogger,
) *verificationService {
	return &verificationService{
		tokenRepository: tokenRepository,
		userRepository:  userRepository,
		notifier:        notifier,
		redis:           redisClient,
		config:          config,
		log:             log,
		now:             time.Now,
	}
}

// GenerateVerificationToken mints a fresh token for the user and removes any
// prior ones, so a single live token exists per user. The delete and the
// insert are separate statements; two racing calls for the same user can both
// insert, which the next issuance or the cleanup sweep repairs.
func (s *verificationService) GenerateVerificationToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if err := s.tokenRepository.DeleteByUserID(ctx, userID); err != nil {
		return "", fmt.Errorf("delete previous verification tokens failed: %w", err)
	}

	tokenID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate verification token id failed: %w", err)
	}

	record := &domain.VerificationToken{
		ID:        tokenID,
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.config.TokenTTL),
	}

	if err := s.tokenRepository.Create(ctx, record); err != nil {
		return "", fmt.Errorf("create verification token failed: %w", err)
	}

	return record.Token, nil
}

// SendVerificationEmail is best effort. Any failure is logged and reported as
// false; it never surfaces an error, so registration cannot fail on it.
func (s *verificationService) SendVerificationEmail(ctx context.Context, userID uuid.UUID, email string) bool {
	token, err := s.GenerateVerificationToken(ctx, userID)
	if err != nil {
		s.log.Errorw("generate verification token failed", "user_id", userID, "error", err)
		return false
	}

	verificationURL := fmt.Sprintf("%s/api/v1/auth/verify?token=%s", s.config.AppURL, token)

	if err := s.notifier.SendVerificationEmail(ctx, email, verificationURL, s.config.TokenTTL); err != nil {
		s.log.Errorw("send verification email failed", "user_id", userID, "email", email, "error", err)
		return false
	}

	s.log.Infow("verification email sent", "user_id", userID, "email", email)
	return true
}

// VerifyUser consumes a token. The token row is deleted only after the user
// mutation succeeded; a crash in between leaves a verified user with a dead
// token, and retrying with that token fails with ErrInvalidToken, which is
// harmless.
func (s *verificationService) VerifyUser(ctx context.Context, token string) error {
	record, err := s.tokenRepository.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("get verification token failed: %w", err)
	}

	if record.ExpiresAt.Before(s.now()) {
		if _, err := s.tokenRepository.DeleteByToken(ctx, token); err != nil {
			return fmt.Errorf("delete expired verification token failed: %w", err)
		}
		return ErrTokenExpired
	}

	if err := s.userRepository.MarkVerified(ctx, record.UserID, s.now()); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrVerificationFailed
		}
		return fmt.Errorf("mark user verified failed: %w", err)
	}

	if _, err := s.tokenRepository.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete consumed verification token failed: %w", err)
	}

	s.log.Infow("user verified", "user_id", record.UserID)
	return nil
}

// ResendVerification re-sends the verification email for an unverified user.
// Resends are throttled per user through redis so a misbehaving client cannot
// flood the mailbox.
func (s *verificationService) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepository.GetOneByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user failed: %w", err)
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	if err := s.checkResendCooldown(ctx, userID); err != nil {
		return err
	}

	if sent := s.SendVerificationEmail(ctx, userID, user.Email); !sent {
		return ErrEmailNotSent
	}

	return nil
}

func (s *verificationService) checkResendCooldown(ctx context.Context, userID uuid.UUID) error {
	if s.redis == nil || s.config.ResendCooldown <= 0 {
		return nil
	}

	key := fmt.Sprintf("verification:resend:%s", userID)
	ok, err := s.redis.SetNX(ctx, key, 1, s.config.ResendCooldown).Result()
	if err != nil {
		// Cooldown is advisory; a broken redis must not block resends.
		s.log.Warnw("resend cooldown check failed", "user_id", userID, "error", err)
		return nil
	}
	if !ok {
		return ErrResendCooldown
	}

	return nil
}

// CleanupExpiredTokens is pure maintenance and safe to run concurrently with
// anything else: expired rows are already unusable.
func (s *verificationService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	count, err := s.tokenRepository.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("delete expired verification tokens failed: %w", err)
	}

	s.log.Infow("expired verification tokens cleaned up", "count", count)
	return count, nil
}
