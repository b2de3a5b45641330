package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
	"github.com/noah-isme/music-school-api/pkg/response"
)

type selectedClassService interface {
	Select(ctx context.Context, req models.SelectClassRequest, caller *models.JWTClaims) (*models.SelectedClass, error)
	ListForOwner(ctx context.Context, email string, caller *models.JWTClaims) ([]models.SelectedClass, error)
	Unselect(ctx context.Context, id string, caller *models.JWTClaims) (*models.DeleteResult, error)
}

// SelectedClassHandler serves a student's class selections.
type SelectedClassHandler struct {
	service selectedClassService
}

// NewSelectedClassHandler constructs a selection handler.
func NewSelectedClassHandler(svc selectedClassService) *SelectedClassHandler {
	return &SelectedClassHandler{service: svc}
}

// List godoc
// @Summary List my selected classes
// @Description The email must be the caller's; an absent email yields an empty list
// @Tags Selections
// @Produce json
// @Security BearerAuth
// @Param email query string false "Owner email"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /selectedClass [get]
func (h *SelectedClassHandler) List(c *gin.Context) {
	selections, err := h.service.ListForOwner(c.Request.Context(), c.Query("email"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, selections)
}

// Create godoc
// @Summary Select a class
// @Tags Selections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.SelectClassRequest true "Selection"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /selectedClass [post]
func (h *SelectedClassHandler) Create(c *gin.Context) {
	var req models.SelectClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection payload"))
		return
	}

	sel, err := h.service.Select(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sel)
}

// Delete godoc
// @Summary Remove a selection
// @Tags Selections
// @Produce json
// @Security BearerAuth
// @Param classId path string true "Selection ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /selectedClass/{classId} [delete]
func (h *SelectedClassHandler) Delete(c *gin.Context) {
	res, err := h.service.Unselect(c.Request.Context(), c.Param("classId"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
