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
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

type selectedClassRepository interface {
	Create(ctx context.Context, sel *models.SelectedClass) error
	ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error)
	ListByClass(ctx context.Context, classID string) ([]models.SelectedClass, error)
	Exists(ctx context.Context, email, classID string) (bool, error)
	FindByID(ctx context.Context, id string) (*models.SelectedClass, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// SelectedClassConfig tunes the enrollment ledger.
type SelectedClassConfig struct {
	// UniqueSelection rejects a repeated (email, class) selection with Conflict.
	UniqueSelection bool
}

// SelectedClassService keeps the per-student selection ledger. Selections are
// not checked against the catalog.
type SelectedClassService struct {
	repo      selectedClassRepository
	validator *validator.Validate
	metrics   *MetricsService
	config    SelectedClassConfig
	logger    *zap.Logger
}

// NewSelectedClassService constructs a SelectedClassService.
func NewSelectedClassService(repo selectedClassRepository, validate *validator.Validate, metrics *MetricsService, config SelectedClassConfig, logger *zap.Logger) *SelectedClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SelectedClassService{repo: repo, validator: validate, metrics: metrics, config: config, logger: logger}
}

// Select records that the caller intends to take req.ClassID. The email
// defaults to the caller's and may not name anyone else.
func (s *SelectedClassService) Select(ctx context.Context, req models.SelectClassRequest, caller *models.JWTClaims) (*models.SelectedClass, error) {
	if caller == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		req.Email = caller.Email
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid selection payload")
	}
	if req.Email != caller.Email {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot select classes for another user")
	}

	if s.config.UniqueSelection {
		exists, err := s.repo.Exists(ctx, req.Email, req.ClassID)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to check selection")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "class already selected")
		}
	}

	sel := &models.SelectedClass{
		ID:             uuid.NewString(),
		Email:          req.Email,
		ClassID:        req.ClassID,
		Name:           req.Name,
		Image:          req.Image,
		InstructorName: req.InstructorName,
		Price:          req.Price,
	}
	if err := s.repo.Create(ctx, sel); err != nil {
		return nil, appErrors.Internal(err, "failed to select class")
	}

	s.metrics.RecordEvent(EventClassSelected)
	return sel, nil
}

// ListForOwner returns the selections owned by email. An empty email yields
// an empty list; any email other than the caller's is Forbidden.
func (s *SelectedClassService) ListForOwner(ctx context.Context, email string, caller *models.JWTClaims) ([]models.SelectedClass, error) {
	if email == "" {
		return []models.SelectedClass{}, nil
	}
	if caller == nil || caller.Email != email {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "forbidden access")
	}

	selections, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list selections")
	}
	return selections, nil
}

// ListForClass returns every selection of classID.
func (s *SelectedClassService) ListForClass(ctx context.Context, classID string) ([]models.SelectedClass, error) {
	selections, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list class selections")
	}
	return selections, nil
}

// Unselect deletes one of the caller's selections.
func (s *SelectedClassService) Unselect(ctx context.Context, id string, caller *models.JWTClaims) (*models.DeleteResult, error) {
	if caller == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
	}

	sel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
		}
		return nil, appErrors.Internal(err, "failed to load selection")
	}
	if sel.Email != caller.Email {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot remove another user's selection")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to delete selection")
	}
	if deleted == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
	}

	s.metrics.RecordEvent(EventClassUnselect)
	return &models.DeleteResult{DeletedCount: deleted}, nil
}
