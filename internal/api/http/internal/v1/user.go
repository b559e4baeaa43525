package v1

import (
	"errors"
	"net/http"

	"github.com/ccna35/simple-crud-app/internal/domain"
	"github.com/ccna35/simple-crud-app/internal/repository"
	"github.com/ccna35/simple-crud-app/internal/service"
	"github.com/ccna35/simple-crud-app/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	users := api.Group("/users", h.userIdentityMiddleware)
	{
		users.GET("", h.getAllUsers)
		users.GET("/:id", h.getUserByID)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}
}

type userResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	IsVerified bool      `json:"is_verified"`
	VerifiedAt string    `json:"verified_at,omitempty"`
	CreatedAt  string    `json:"created_at"`
}

func toUserResponse(user *domain.User) userResponse {
	res := userResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName.String,
		LastName:   user.LastName.String,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if user.VerifiedAt != nil {
		res.VerifiedAt = user.VerifiedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return res
}

type usersListResponse struct {
	Users []userResponse `json:"users"`
}

// @Summary Get Users List
// @Tags Users
// @Description Get all users
// @ModuleID getAllUsers
// @Accept  json
// @Produce  json
// @Success 200 {object} usersListResponse
// @Failure 401
// @Failure 500
// @Security UserAuth
// @Router /users [get]
func (h *Handler) getAllUsers(c *gin.Context) {
	users, err := h.services.Users.GetAll(c.Request.Context())
	if err != nil {
		logger.Error("get users failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	res := usersListResponse{Users: make([]userResponse, 0, len(users))}
	for i := range users {
		res.Users = append(res.Users, toUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, res)
}

// @Summary Get User
// @Tags Users
// @Description Get one user by id
// @ModuleID getUserByID
// @Accept  json
// @Produce  json
// @Param id path string true "user id"
// @Success 200 {object} userResponse
// @Failure 400,404 {object} ErrorStruct
// @Failure 401
// @Failure 500
// @Security UserAuth
// @Router /users/{id} [get]
func (h *Handler) getUserByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, UserNotFoundCode)
		return
	}

	user, err := h.services.Users.GetOneByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			errorResponse(c, http.StatusNotFound, UserNotFoundCode)
			return
		}
		logger.Error("get user failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,username"`
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
}

// @Summary Update User
// @Tags Users
// @Description Update user fields
// @ModuleID updateUser
// @Accept  json
// @Produce  json
// @Param id path string true "user id"
// @Param input body updateUserRequest true "fields to update"
// @Success 200
// @Failure 400,404 {object} ErrorStruct
// @Failure 401
// @Failure 500
// @Security UserAuth
// @Router /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, UserNotFoundCode)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err = h.services.Users.Update(c.Request.Context(), id, repository.UpdateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			errorResponse(c, http.StatusNotFound, UserNotFoundCode)
		case errors.Is(err, service.ErrUserAlreadyExist):
			errorResponse(c, http.StatusBadRequest, UserAlreadyExistsCode)
		default:
			logger.Error("update user failed", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Delete User
// @Tags Users
// @Description Delete one user by id
// @ModuleID deleteUser
// @Accept  json
// @Produce  json
// @Param id path string true "user id"
// @Success 200
// @Failure 400,404 {object} ErrorStruct
// @Failure 401
// @Failure 500
// @Security UserAuth
// @Router /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, UserNotFoundCode)
		return
	}

	if err := h.services.Users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			errorResponse(c, http.StatusNotFound, UserNotFoundCode)
			return
		}
		logger.Error("delete user failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
