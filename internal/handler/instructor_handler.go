package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/music-school-api/internal/models"
	"github.com/noah-isme/music-school-api/pkg/response"
)

type instructorService interface {
	ListAll(ctx context.Context) ([]models.Instructor, error)
	TopRanked(ctx context.Context, n int) ([]models.Instructor, error)
}

// InstructorHandler serves the public instructor directory.
type InstructorHandler struct {
	service instructorService
}

// NewInstructorHandler constructs an instructor handler.
func NewInstructorHandler(svc instructorService) *InstructorHandler {
	return &InstructorHandler{service: svc}
}

// List godoc
// @Summary List instructors
// @Tags Instructors
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /allInstructor [get]
func (h *InstructorHandler) List(c *gin.Context) {
	instructors, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, instructors)
}

// Top godoc
// @Summary Top instructors by number of students
// @Tags Instructors
// @Produce json
// @Param limit query int false "Maximum results (default 6)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /topInstructor [get]
func (h *InstructorHandler) Top(c *gin.Context) {
	limit, err := limitFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	instructors, err := h.service.TopRanked(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, instructors)
}
