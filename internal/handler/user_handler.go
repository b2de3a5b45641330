package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
	"github.com/noah-isme/music-school-api/pkg/response"
)

type userService interface {
	List(ctx context.Context) ([]models.User, error)
	Register(ctx context.Context, req models.RegisterUserRequest) (*models.RegisterResult, error)
	Promote(ctx context.Context, id string, role models.UserRole) (*models.User, error)
	Remove(ctx context.Context, id string) (*models.DeleteResult, error)
}

type selfRoleChecker interface {
	IsAdmin(ctx context.Context, caller *models.JWTClaims, email string) (bool, error)
	IsInstructor(ctx context.Context, caller *models.JWTClaims, email string) (bool, error)
}

// UserHandler manages user directory endpoints.
type UserHandler struct {
	service userService
	roles   selfRoleChecker
}

// NewUserHandler constructs a new user handler.
func NewUserHandler(svc userService, roles selfRoleChecker) *UserHandler {
	return &UserHandler{service: svc, roles: roles}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

// Register godoc
// @Summary Register user
// @Description Create the account unless the email is already registered
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body models.RegisterUserRequest true "User"
// @Success 201 {object} response.Envelope
// @Success 200 {object} response.Envelope "user already exists"
// @Failure 400 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid user payload"))
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !res.Created {
		response.OK(c, res)
		return
	}
	response.Created(c, res)
}

// PromoteAdmin godoc
// @Summary Grant admin role
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/admin/{id} [patch]
func (h *UserHandler) PromoteAdmin(c *gin.Context) {
	h.promote(c, models.RoleAdmin)
}

// PromoteInstructor godoc
// @Summary Grant instructor role
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/instructor/{id} [patch]
func (h *UserHandler) PromoteInstructor(c *gin.Context) {
	h.promote(c, models.RoleInstructor)
}

func (h *UserHandler) promote(c *gin.Context, role models.UserRole) {
	user, err := h.service.Promote(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// CheckAdmin godoc
// @Summary Check whether the caller is an admin
// @Description Answers only for the caller's own email; any other email yields false
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /users/admin/{email} [get]
func (h *UserHandler) CheckAdmin(c *gin.Context) {
	ok, err := h.roles.IsAdmin(c.Request.Context(), claimsFromContext(c), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"admin": ok})
}

// CheckInstructor godoc
// @Summary Check whether the caller is an instructor
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /users/instructor/{email} [get]
func (h *UserHandler) CheckInstructor(c *gin.Context) {
	ok, err := h.roles.IsInstructor(c.Request.Context(), claimsFromContext(c), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"instructor": ok})
}

// Delete godoc
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	res, err := h.service.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
