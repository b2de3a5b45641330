package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

type instructorRepository interface {
	List(ctx context.Context) ([]models.Instructor, error)
	Top(ctx context.Context, limit int) ([]models.Instructor, error)
}

// InstructorService serves the read-only instructor directory.
type InstructorService struct {
	repo         instructorRepository
	cache        *CacheService
	defaultLimit int
	logger       *zap.Logger
}

// NewInstructorService constructs an InstructorService. cache may be nil.
func NewInstructorService(repo instructorRepository, cache *CacheService, defaultLimit int, logger *zap.Logger) *InstructorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultLimit <= 0 || defaultLimit > MaxTopLimit {
		defaultLimit = DefaultTopLimit
	}
	return &InstructorService{repo: repo, cache: cache, defaultLimit: defaultLimit, logger: logger}
}

// ListAll returns every instructor.
func (s *InstructorService) ListAll(ctx context.Context) ([]models.Instructor, error) {
	instructors, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list instructors")
	}
	return instructors, nil
}

// TopRanked returns at most n instructors by number of students, capped at MaxTopLimit.
func (s *InstructorService) TopRanked(ctx context.Context, n int) ([]models.Instructor, error) {
	n = rankLimit(n, s.defaultLimit)
	instructors, err := loadRanked(ctx, s.cache, rankingKey("instructors", n), func() ([]models.Instructor, error) {
		return s.repo.Top(ctx, n)
	})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to rank instructors")
	}
	return instructors, nil
}
