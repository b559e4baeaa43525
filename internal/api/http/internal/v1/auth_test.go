package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ccna35/simple-crud-app/internal/config"
	"github.com/ccna35/simple-crud-app/internal/domain"
	"github.com/ccna35/simple-crud-app/internal/repository"
	"github.com/ccna35/simple-crud-app/internal/service"
	"github.com/ccna35/simple-crud-app/pkg/auth"
	"github.com/ccna35/simple-crud-app/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type usersServiceMock struct {
	mock.Mock
}

func (m *usersServiceMock) SignUp(ctx context.Context, input service.SignUpInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *usersServiceMock) SignIn(ctx context.Context, input service.SignInInput, userAgent string, userIP string) (*service.Tokens, error) {
	args := m.Called(ctx, input, userAgent, userIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Tokens), args.Error(1)
}

func (m *usersServiceMock) Refresh(ctx context.Context, refreshToken string, userAgent string, userIP string) (*service.Tokens, error) {
	args := m.Called(ctx, refreshToken, userAgent, userIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Tokens), args.Error(1)
}

func (m *usersServiceMock) GetAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *usersServiceMock) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *usersServiceMock) Update(ctx context.Context, id uuid.UUID, input repository.UpdateUserInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *usersServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type verificationsServiceMock struct {
	mock.Mock
}

func (m *verificationsServiceMock) GenerateVerificationToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *verificationsServiceMock) SendVerificationEmail(ctx context.Context, userID uuid.UUID, email string) bool {
	args := m.Called(ctx, userID, email)
	return args.Bool(0)
}

func (m *verificationsServiceMock) VerifyUser(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *verificationsServiceMock) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *verificationsServiceMock) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestRouter(t *testing.T, users *usersServiceMock, verifications *verificationsServiceMock) (*gin.Engine, auth.TokenManager) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	validator.RegisterGinValidator()

	tokenManager, err := auth.NewManager(config.JWTConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		SigningKey:      "test-signing-key",
	})
	require.NoError(t, err)

	handler := NewHandler(&service.Services{
		Users:         users,
		Verifications: verifications,
	}, tokenManager, &config.Config{})

	router := gin.New()
	handler.Init(router.Group("/api"))
	return router, tokenManager
}

type errorBody struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestVerifyHandler(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		serviceErr error
		wantStatus int
		wantCode   int
	}{
		{"success", "?token=valid-token", nil, http.StatusOK, 0},
		{"missing token", "", nil, http.StatusBadRequest, VerificationTokenMissingCode},
		{"unknown token", "?token=unknown-token", service.ErrInvalidToken, http.StatusBadRequest, VerificationTokenInvalidCode},
		{"expired token", "?token=expired-token", service.ErrTokenExpired, http.StatusBadRequest, VerificationTokenExpiredCode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifications := new(verificationsServiceMock)
			router, _ := newTestRouter(t, new(usersServiceMock), verifications)

			if tc.query != "" {
				verifications.On("VerifyUser", mock.Anything, mock.AnythingOfType("string")).Return(tc.serviceErr).Once()
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify"+tc.query, nil)
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantCode != 0 {
				assert.Equal(t, tc.wantCode, decodeErrorBody(t, rec).ErrorCode)
			}
			verifications.AssertExpectations(t)
		})
	}
}

func TestSignUpHandler(t *testing.T) {
	users := new(usersServiceMock)
	router, _ := newTestRouter(t, users, new(verificationsServiceMock))

	userID := uuid.New()
	users.On("SignUp", mock.Anything, mock.AnythingOfType("service.SignUpInput")).
		Return(&domain.User{ID: userID, Username: "newuser", Email: "new@example.com"}, nil).Once()

	payload := `{"username":"newuser","email":"new@example.com","password":"super-secret"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-up", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body signUpResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID, body.ID)
	assert.Equal(t, "new@example.com", body.Email)
}

func TestSignUpHandlerDuplicate(t *testing.T) {
	users := new(usersServiceMock)
	router, _ := newTestRouter(t, users, new(verificationsServiceMock))

	users.On("SignUp", mock.Anything, mock.Anything).Return(nil, service.ErrUserAlreadyExist).Once()

	payload := `{"username":"taken","email":"taken@example.com","password":"super-secret"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-up", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, UserAlreadyExistsCode, decodeErrorBody(t, rec).ErrorCode)
}

func TestSignUpHandlerValidation(t *testing.T) {
	users := new(usersServiceMock)
	router, _ := newTestRouter(t, users, new(verificationsServiceMock))

	payload := `{"username":"x","email":"not-an-email","password":"short"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-up", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	users.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
}

func TestResendVerificationHandler(t *testing.T) {
	userID := uuid.New()

	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   int
	}{
		{"success", nil, http.StatusOK, 0},
		{"already verified", service.ErrAlreadyVerified, http.StatusBadRequest, UserAlreadyVerifiedCode},
		{"cooldown", service.ErrResendCooldown, http.StatusTooManyRequests, VerificationResendTooSoonCode},
		{"unknown user", service.ErrUserNotFound, http.StatusNotFound, UserNotFoundCode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifications := new(verificationsServiceMock)
			router, tokenManager := newTestRouter(t, new(usersServiceMock), verifications)

			verifications.On("ResendVerification", mock.Anything, userID).Return(tc.serviceErr).Once()

			accessToken, _, err := tokenManager.NewJWT(&userID)
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/resend-verification", nil)
			req.Header.Set("Authorization", "Bearer "+accessToken)
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantCode != 0 {
				assert.Equal(t, tc.wantCode, decodeErrorBody(t, rec).ErrorCode)
			}
		})
	}
}

func TestResendVerificationHandlerUnauthorized(t *testing.T) {
	verifications := new(verificationsServiceMock)
	router, _ := newTestRouter(t, new(usersServiceMock), verifications)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/resend-verification", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	verifications.AssertNotCalled(t, "ResendVerification", mock.Anything, mock.Anything)
}
