package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/music-school-api/internal/middleware"
	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	return middleware.CurrentUser(c)
}

// limitFromQuery parses ?limit=. Absent means 0, which services treat as
// their default.
func limitFromQuery(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "limit must be a non-negative integer")
	}
	return limit, nil
}
