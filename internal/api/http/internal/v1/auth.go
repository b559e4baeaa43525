package v1

import (
	"errors"
	"net/http"

	"github.com/ccna35/simple-crud-app/internal/service"
	"github.com/ccna35/simple-crud-app/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		auth.POST("/refresh", h.refresh)
		auth.GET("/verify", h.verify)
		auth.POST("/resend-verification", h.userIdentityMiddleware, h.resendVerification)
	}
}

type signUpRequest struct {
	Username  string `json:"username" binding:"required,username"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=64"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
}

type signUpResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// @Summary Sign Up
// @Tags Auth
// @Description Register a new user and send a verification email
// @ModuleID signUp
// @Accept  json
// @Produce  json
// @Param input body signUpRequest true "sign up info"
// @Success 201 {object} signUpResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	user, err := h.services.Users.SignUp(c.Request.Context(), service.SignUpInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExist) {
			errorResponse(c, http.StatusBadRequest, UserAlreadyExistsCode)
			return
		}
		logger.Error("sign up failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, signUpResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokensResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken uuid.UUID `json:"refresh_token"`
}

// @Summary Sign In
// @Tags Auth
// @Description Authenticate with email and password
// @ModuleID signIn
// @Accept  json
// @Produce  json
// @Param input body signInRequest true "credentials"
// @Success 200 {object} tokensResponse
// @Failure 400,401 {object} ErrorStruct
// @Failure 500
// @Router /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.SignIn(c.Request.Context(), service.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	}, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			errorResponse(c, http.StatusUnauthorized, InvalidCredentialsCode)
			return
		}
		logger.Error("sign in failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, tokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary Refresh Tokens
// @Tags Auth
// @Description Exchange a refresh token for a new token pair
// @ModuleID refresh
// @Accept  json
// @Produce  json
// @Param input body refreshRequest true "refresh token"
// @Success 200 {object} tokensResponse
// @Failure 400,401 {object} ErrorStruct
// @Failure 500
// @Router /auth/refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Users.Refresh(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrSessionExpired) {
			errorResponse(c, http.StatusUnauthorized, RefreshTokenInvalidCode)
			return
		}
		logger.Error("refresh failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, tokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// @Summary Verify Email
// @Tags Auth
// @Description Consume an email verification token
// @ModuleID verify
// @Accept  json
// @Produce  json
// @Param token query string true "verification token"
// @Success 200 {object} verifyResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /auth/verify [get]
func (h *Handler) verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		errorResponse(c, http.StatusBadRequest, VerificationTokenMissingCode)
		return
	}

	if err := h.services.Verifications.VerifyUser(c.Request.Context(), token); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			errorResponse(c, http.StatusBadRequest, VerificationTokenInvalidCode)
		case errors.Is(err, service.ErrTokenExpired):
			errorResponse(c, http.StatusBadRequest, VerificationTokenExpiredCode)
		default:
			logger.Error("verify user failed", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, verifyResponse{
		Success: true,
		Message: "Email verification successful",
	})
}

// @Summary Resend Verification Email
// @Tags Auth
// @Description Resend the verification email for the authenticated user
// @ModuleID resendVerification
// @Accept  json
// @Produce  json
// @Success 200 {object} verifyResponse
// @Failure 400,404,429 {object} ErrorStruct
// @Failure 500
// @Security UserAuth
// @Router /auth/resend-verification [post]
func (h *Handler) resendVerification(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.services.Verifications.ResendVerification(c.Request.Context(), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			errorResponse(c, http.StatusNotFound, UserNotFoundCode)
		case errors.Is(err, service.ErrAlreadyVerified):
			errorResponse(c, http.StatusBadRequest, UserAlreadyVerifiedCode)
		case errors.Is(err, service.ErrResendCooldown):
			errorResponse(c, http.StatusTooManyRequests, VerificationResendTooSoonCode)
		default:
			logger.Error("resend verification failed", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, verifyResponse{
		Success: true,
		Message: "Verification email sent successfully",
	})
}
