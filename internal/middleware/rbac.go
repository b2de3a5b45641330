package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
	"github.com/noah-isme/music-school-api/pkg/response"
)

type roleResolver interface {
	RoleOf(ctx context.Context, email string) (models.UserRole, error)
}

// RequireRole admits the request only when the caller's stored role equals
// role. It must follow RequireAuthenticated. The role is read from the store
// on every request.
func RequireRole(resolver roleResolver, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentUser(c)
		if claims == nil {
			response.Abort(c, appErrors.ErrUnauthenticated)
			return
		}

		stored, err := resolver.RoleOf(c.Request.Context(), claims.Email)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if stored != role {
			response.Abort(c, appErrors.ErrForbidden)
			return
		}

		c.Next()
	}
}
