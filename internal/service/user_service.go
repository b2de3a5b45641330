package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/music-school-api/internal/models"
	"github.com/noah-isme/music-school-api/internal/repository"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

// MessageUserExists is reported when registration finds the email taken.
const MessageUserExists = "user already exists"

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.User, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// UserService handles account registration and role management.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list users")
	}
	return users, nil
}

// Register creates the account for req.Email unless it already exists. An
// existing account is not an error; the result reports Created=false.
func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) (*models.RegisterResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid user payload")
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return &models.RegisterResult{Created: false, Message: MessageUserExists}, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "failed to look up user")
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Name:     strings.TrimSpace(req.Name),
		PhotoURL: req.PhotoURL,
		Role:     models.RoleNone,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// A concurrent registration won between lookup and insert.
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Info("registration lost insert race", zap.String("email", req.Email))
			return &models.RegisterResult{Created: false, Message: MessageUserExists}, nil
		}
		return nil, appErrors.Internal(err, "failed to create user")
	}

	s.metrics.RecordEvent(EventUserRegistered)
	return &models.RegisterResult{User: user, Created: true}, nil
}

// Promote sets the role of the user identified by id. Only admin and
// instructor may be granted.
func (s *UserService) Promote(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	if !role.Promotable() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "role must be admin or instructor")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}

	user, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to update role")
	}

	s.logger.Info("user promoted", zap.String("user_id", id), zap.String("role", string(role)))
	s.metrics.RecordEvent(EventUserPromoted)
	return user, nil
}

// Remove deletes the user identified by id.
func (s *UserService) Remove(ctx context.Context, id string) (*models.DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to delete user")
	}
	if deleted == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}

	s.metrics.RecordEvent(EventUserRemoved)
	return &models.DeleteResult{DeletedCount: deleted}, nil
}
