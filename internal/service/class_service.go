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

type classRepository interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error)
	Top(ctx context.Context, limit int) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error)
}

// ClassService implements the class catalog and its approval workflow.
// Every class starts pending and may only move to approved.
type ClassService struct {
	repo         classRepository
	cache        *CacheService
	metrics      *MetricsService
	validator    *validator.Validate
	defaultLimit int
	logger       *zap.Logger
}

// NewClassService constructs a ClassService. cache and metrics may be nil.
func NewClassService(repo classRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, defaultLimit int, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if defaultLimit <= 0 || defaultLimit > MaxTopLimit {
		defaultLimit = DefaultTopLimit
	}
	return &ClassService{repo: repo, cache: cache, metrics: metrics, validator: validate, defaultLimit: defaultLimit, logger: logger}
}

// Submit stores a new class as pending. A caller-supplied status is ignored
// and the enrollment count starts at zero. A failed ranking-cache
// invalidation does not fail the submit; cached rankings may then lag until
// their TTL expires.
func (s *ClassService) Submit(ctx context.Context, req models.SubmitClassRequest, caller *models.JWTClaims) (*models.Class, error) {
	if caller == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid class payload")
	}

	class := &models.Class{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Image:           req.Image,
		InstructorID:    req.InstructorID,
		InstructorName:  req.InstructorName,
		InstructorEmail: req.InstructorEmail,
		AvailableSeats:  req.AvailableSeats,
		Price:           req.Price,
		Status:          models.ClassStatusPending,
	}
	if class.InstructorEmail == "" {
		class.InstructorEmail = caller.Email
	}
	if class.InstructorName == "" {
		class.InstructorName = caller.Name
	}

	if err := s.repo.Create(ctx, class); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, appErrors.Validation(err, "instructor does not exist")
		}
		return nil, appErrors.Internal(err, "failed to submit class")
	}

	_ = s.cache.Invalidate(ctx, classCachePattern)
	s.metrics.RecordEvent(EventClassSubmitted)
	s.logger.Info("class submitted", zap.String("class_id", class.ID), zap.String("instructor", class.InstructorEmail))
	return class, nil
}

// Approve moves a class to approved. Approving an approved class is a no-op.
// As with Submit, cached rankings may lag until TTL if invalidation fails.
func (s *ClassService) Approve(ctx context.Context, id string) (*models.Class, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}

	class, err := s.repo.UpdateStatus(ctx, id, models.ClassStatusApproved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Internal(err, "failed to approve class")
	}

	_ = s.cache.Invalidate(ctx, classCachePattern)
	s.metrics.RecordEvent(EventClassApproved)
	return class, nil
}

// Get returns a single class.
func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Internal(err, "failed to load class")
	}
	return class, nil
}

// ListAll returns every class, narrowed by status when the filter sets one.
func (s *ClassService) ListAll(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	classes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list classes")
	}
	return classes, nil
}

// TopRanked returns at most n classes by enrolled students, ties in
// submission order. n is capped at MaxTopLimit.
func (s *ClassService) TopRanked(ctx context.Context, n int) ([]models.Class, error) {
	n = rankLimit(n, s.defaultLimit)
	classes, err := loadRanked(ctx, s.cache, rankingKey("classes", n), func() ([]models.Class, error) {
		return s.repo.Top(ctx, n)
	})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to rank classes")
	}
	return classes, nil
}
