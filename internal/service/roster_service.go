package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
	"github.com/noah-isme/music-school-api/pkg/export"
)

type classFinder interface {
	Get(ctx context.Context, id string) (*models.Class, error)
}

type classSelections interface {
	ListForClass(ctx context.Context, classID string) ([]models.SelectedClass, error)
}

// RosterFile is a rendered roster ready to be served as an attachment.
type RosterFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// RosterService renders the selections of a class as CSV or PDF.
type RosterService struct {
	classes    classFinder
	selections classSelections
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(classes classFinder, selections classSelections, metrics *MetricsService, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{classes: classes, selections: selections, metrics: metrics, logger: logger}
}

var rosterHeaders = []string{"Email", "Class", "Instructor", "Price", "Selected At"}

// Export renders the roster of classID in format ("csv" by default, or "pdf").
func (s *RosterService) Export(ctx context.Context, classID, format string) (*RosterFile, error) {
	renderer, err := export.ForFormat(format)
	if err != nil {
		return nil, appErrors.Validation(err, "format must be csv or pdf")
	}

	class, err := s.classes.Get(ctx, classID)
	if err != nil {
		return nil, err
	}
	selections, err := s.selections.ListForClass(ctx, class.ID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("Roster: %s", class.Name),
		Headers: rosterHeaders,
		Rows:    make([][]string, 0, len(selections)),
	}
	for _, sel := range selections {
		dataset.Rows = append(dataset.Rows, []string{
			sel.Email,
			sel.Name,
			sel.InstructorName,
			fmt.Sprintf("%.2f", sel.Price),
			sel.CreatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}

	body, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render roster")
	}

	s.metrics.RecordEvent(EventRosterExported)
	s.logger.Info("roster exported", zap.String("class_id", class.ID), zap.String("format", renderer.Extension()), zap.Int("rows", len(dataset.Rows)))
	return &RosterFile{
		Filename:    fmt.Sprintf("roster-%s.%s", slug(class.Name, class.ID), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func slug(name, fallback string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return fallback
	}
	return out
}
