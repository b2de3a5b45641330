package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/music-school-api/internal/models"
	"github.com/noah-isme/music-school-api/internal/service"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
	"github.com/noah-isme/music-school-api/pkg/response"
)

type classService interface {
	Submit(ctx context.Context, req models.SubmitClassRequest, caller *models.JWTClaims) (*models.Class, error)
	Approve(ctx context.Context, id string) (*models.Class, error)
	ListAll(ctx context.Context, filter models.ClassFilter) ([]models.Class, error)
	TopRanked(ctx context.Context, n int) ([]models.Class, error)
}

type rosterExporter interface {
	Export(ctx context.Context, classID, format string) (*service.RosterFile, error)
}

// ClassHandler exposes the class catalog and approval workflow.
type ClassHandler struct {
	service classService
	roster  rosterExporter
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc classService, roster rosterExporter) *ClassHandler {
	return &ClassHandler{service: svc, roster: roster}
}

// List godoc
// @Summary List classes
// @Description Every class regardless of status unless a status filter is given
// @Tags Classes
// @Produce json
// @Param status query string false "pending or approved"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /allClass [get]
func (h *ClassHandler) List(c *gin.Context) {
	var filter models.ClassFilter
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseClassStatus(raw)
		if err != nil {
			response.Error(c, appErrors.Validation(err, "status must be pending or approved"))
			return
		}
		filter.Status = status
	}

	classes, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// Submit godoc
// @Summary Submit class
// @Description Instructors submit classes; every submission starts pending
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.SubmitClassRequest true "Class"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Submit(c *gin.Context) {
	var req models.SubmitClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid class payload"))
		return
	}

	class, err := h.service.Submit(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Approve godoc
// @Summary Approve class
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{id}/approve [patch]
func (h *ClassHandler) Approve(c *gin.Context) {
	class, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, class)
}

// Top godoc
// @Summary Top classes by enrolled students
// @Tags Classes
// @Produce json
// @Param limit query int false "Maximum results (default 6)"
// @Success 200 {object} response.Envelope
// @Router /topClass [get]
func (h *ClassHandler) Top(c *gin.Context) {
	limit, err := limitFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	classes, err := h.service.TopRanked(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// Roster godoc
// @Summary Export class roster
// @Tags Classes
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{id}/roster [get]
func (h *ClassHandler) Roster(c *gin.Context) {
	file, err := h.roster.Export(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Body)
}
