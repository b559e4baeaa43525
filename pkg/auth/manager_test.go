package auth

import (
	"testing"
	"time"

	"github.com/ccna35/simple-crud-app/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(config.JWTConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		SigningKey:      "test-signing-key",
	})
	require.NoError(t, err)
	return m
}

func TestNewManagerRequiresSigningKey(t *testing.T) {
	_, err := NewManager(config.JWTConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	require.Error(t, err)
}

func TestNewManagerRequiresTTLs(t *testing.T) {
	_, err := NewManager(config.JWTConfig{SigningKey: "key", RefreshTokenTTL: time.Hour})
	require.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "key", AccessTokenTTL: time.Hour})
	require.Error(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	m := testManager(t)

	userID := uuid.New()
	token, ttl, err := m.NewJWT(&userID)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, ttl)

	sub, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), sub)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	m := testManager(t)

	other, err := NewManager(config.JWTConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		SigningKey:      "another-signing-key",
	})
	require.NoError(t, err)

	userID := uuid.New()
	token, _, err := other.NewJWT(&userID)
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.Error(t, err)
}

func TestValidateRefreshToken(t *testing.T) {
	m := testManager(t)

	refreshToken, ttl, err := m.NewRefreshToken()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)

	id, err := m.ValidateRefreshToken(refreshToken.String())
	require.NoError(t, err)
	assert.Equal(t, refreshToken, *id)

	_, err = m.ValidateRefreshToken("definitely-not-a-uuid")
	require.Error(t, err)
}
