package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

type roleLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RoleResolver reads the stored role for an identity. Nothing is cached so a
// promotion is visible to the next request.
type RoleResolver struct {
	users  roleLookup
	logger *zap.Logger
}

// NewRoleResolver constructs a RoleResolver.
func NewRoleResolver(users roleLookup, logger *zap.Logger) *RoleResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleResolver{users: users, logger: logger}
}

// RoleOf returns the stored role for email. Unknown users hold RoleNone.
func (r *RoleResolver) RoleOf(ctx context.Context, email string) (models.UserRole, error) {
	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoleNone, nil
		}
		return models.RoleNone, appErrors.Internal(err, "failed to resolve role")
	}
	return models.ParseUserRole(string(user.Role)), nil
}

// IsAdmin reports whether caller is an admin, answering only about the
// caller's own email.
func (r *RoleResolver) IsAdmin(ctx context.Context, caller *models.JWTClaims, email string) (bool, error) {
	return r.selfHasRole(ctx, caller, email, models.RoleAdmin)
}

// IsInstructor reports whether caller is an instructor, answering only about
// the caller's own email.
func (r *RoleResolver) IsInstructor(ctx context.Context, caller *models.JWTClaims, email string) (bool, error) {
	return r.selfHasRole(ctx, caller, email, models.RoleInstructor)
}

// selfHasRole answers false for any email other than the caller's without
// touching the store, so another user's role is never revealed.
func (r *RoleResolver) selfHasRole(ctx context.Context, caller *models.JWTClaims, email string, role models.UserRole) (bool, error) {
	if caller == nil || caller.Email == "" || caller.Email != email {
		return false, nil
	}
	stored, err := r.RoleOf(ctx, email)
	if err != nil {
		return false, err
	}
	return stored == role, nil
}
