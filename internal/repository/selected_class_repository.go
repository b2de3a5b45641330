package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/music-school-api/internal/models"
)

const selectedClassColumns = `id, email, class_id, name, image, instructor_name, price, created_at`

// SelectedClassRepository stores per-student class selections.
type SelectedClassRepository struct {
	db *sqlx.DB
}

// NewSelectedClassRepository constructs a SelectedClassRepository.
func NewSelectedClassRepository(db *sqlx.DB) *SelectedClassRepository {
	return &SelectedClassRepository{db: db}
}

// Create inserts a selection record.
func (r *SelectedClassRepository) Create(ctx context.Context, sel *models.SelectedClass) error {
	if sel.ID == "" {
		sel.ID = uuid.NewString()
	}
	if sel.CreatedAt.IsZero() {
		sel.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO selected_classes (id, email, class_id, name, image, instructor_name, price, created_at) VALUES (:id, :email, :class_id, :name, :image, :instructor_name, :price, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, sel); err != nil {
		return fmt.Errorf("create selected class: %w", err)
	}
	return nil
}

// ListByEmail returns the selections owned by email in insertion order.
func (r *SelectedClassRepository) ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error) {
	const query = `SELECT ` + selectedClassColumns + ` FROM selected_classes WHERE email = $1 ORDER BY created_at ASC, id ASC`
	selections := []models.SelectedClass{}
	if err := r.db.SelectContext(ctx, &selections, query, email); err != nil {
		return nil, fmt.Errorf("list selected classes by email: %w", err)
	}
	return selections, nil
}

// ListByClass returns the selections referencing classID in insertion order.
func (r *SelectedClassRepository) ListByClass(ctx context.Context, classID string) ([]models.SelectedClass, error) {
	const query = `SELECT ` + selectedClassColumns + ` FROM selected_classes WHERE class_id = $1 ORDER BY created_at ASC, id ASC`
	selections := []models.SelectedClass{}
	if err := r.db.SelectContext(ctx, &selections, query, classID); err != nil {
		return nil, fmt.Errorf("list selected classes by class: %w", err)
	}
	return selections, nil
}

// Exists reports whether email already selected classID.
func (r *SelectedClassRepository) Exists(ctx context.Context, email, classID string) (bool, error) {
	const query = `SELECT 1 FROM selected_classes WHERE email = $1 AND class_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, email, classID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check selected class: %w", err)
	}
	return true, nil
}

// FindByID returns one selection. A missing record yields sql.ErrNoRows.
func (r *SelectedClassRepository) FindByID(ctx context.Context, id string) (*models.SelectedClass, error) {
	const query = `SELECT ` + selectedClassColumns + ` FROM selected_classes WHERE id = $1`
	var sel models.SelectedClass
	if err := r.db.GetContext(ctx, &sel, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find selected class: %w", err)
	}
	return &sel, nil
}

// Delete removes a selection and reports how many rows were deleted.
func (r *SelectedClassRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM selected_classes WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete selected class: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete selected class rows affected: %w", err)
	}
	return affected, nil
}
