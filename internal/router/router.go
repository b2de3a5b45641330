package router

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/music-school-api/internal/handler"
	"github.com/noah-isme/music-school-api/internal/middleware"
	"github.com/noah-isme/music-school-api/internal/models"
	"github.com/noah-isme/music-school-api/internal/service"
	"github.com/noah-isme/music-school-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/music-school-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/music-school-api/pkg/middleware/requestid"
)

// TokenVerifier decodes bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*models.JWTClaims, error)
}

// RoleResolver reads a caller's stored role.
type RoleResolver interface {
	RoleOf(ctx context.Context, email string) (models.UserRole, error)
}

// AuditWriter persists audit entries for privileged routes.
type AuditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Instructor    *handler.InstructorHandler
	Class         *handler.ClassHandler
	SelectedClass *handler.SelectedClassHandler
	Metrics       *handler.MetricsHandler
}

// Guards holds the collaborators of the authorization middleware.
type Guards struct {
	Tokens TokenVerifier
	Roles  RoleResolver
	Audit  AuditWriter
}

// Options tunes the engine.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	Metrics        *service.MetricsService
	Logger         *zap.Logger
}

// New builds the gin engine with every route and its guard chain.
func New(h Handlers, g Guards, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authenticated := middleware.RequireAuthenticated(g.Tokens)
	admin := middleware.RequireRole(g.Roles, models.RoleAdmin)
	instructor := middleware.RequireRole(g.Roles, models.RoleInstructor)
	audit := func(action, resource, idParam string) gin.HandlerFunc {
		return middleware.Audit(g.Audit, opts.Logger, action, resource, idParam)
	}

	api := r.Group(opts.APIPrefix)
	api.GET("/", h.Metrics.Banner)
	api.POST("/jwt", h.Auth.IssueToken)

	// Users
	api.POST("/users", h.User.Register)
	api.GET("/users", authenticated, admin, h.User.List)
	api.GET("/users/admin/:email", authenticated, h.User.CheckAdmin)
	api.GET("/users/instructor/:email", authenticated, h.User.CheckInstructor)
	api.PATCH("/users/admin/:id", authenticated, admin, audit(models.AuditActionPromoteAdmin, "users", "id"), h.User.PromoteAdmin)
	api.PATCH("/users/instructor/:id", authenticated, admin, audit(models.AuditActionPromoteInstructor, "users", "id"), h.User.PromoteInstructor)
	api.DELETE("/users/:id", authenticated, admin, audit(models.AuditActionUserDelete, "users", "id"), h.User.Delete)

	// Instructors
	api.GET("/allInstructor", h.Instructor.List)
	api.GET("/topInstructor", h.Instructor.Top)

	// Classes
	api.GET("/allClass", h.Class.List)
	api.GET("/topClass", h.Class.Top)
	api.POST("/classes", authenticated, instructor, h.Class.Submit)
	api.PATCH("/classes/:id/approve", authenticated, admin, audit(models.AuditActionClassApprove, "classes", "id"), h.Class.Approve)
	api.GET("/classes/:id/roster", authenticated, admin, h.Class.Roster)

	// Selections
	selections := api.Group("/selectedClass", authenticated)
	selections.GET("", h.SelectedClass.List)
	selections.POST("", h.SelectedClass.Create)
	selections.DELETE("/:classId", h.SelectedClass.Delete)

	return r
}
