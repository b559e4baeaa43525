package service

import "errors"

var (
	ErrUserAlreadyExist   = errors.New("user already exist")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("refresh session not found")
	ErrSessionExpired     = errors.New("refresh session expired")

	ErrInvalidToken       = errors.New("invalid or expired verification token")
	ErrTokenExpired       = errors.New("verification token has expired")
	ErrVerificationFailed = errors.New("failed to verify user")
	ErrAlreadyVerified    = errors.New("user is already verified")
	ErrResendCooldown     = errors.New("verification email requested too recently")
	ErrEmailNotSent       = errors.New("failed to send verification email")
)
