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

const classColumns = `id, name, image, instructor_id, instructor_name, instructor_email, available_seats, price, enroll_students, status, created_at, updated_at`

// ClassRepository manages persistence for class listings.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns classes in insertion order, optionally narrowed by status.
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes`
	var args []interface{}
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	classes := []models.Class{}
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// Top returns at most limit classes ordered by enroll_students descending,
// ties kept in insertion order.
func (r *ClassRepository) Top(ctx context.Context, limit int) ([]models.Class, error) {
	const query = `SELECT ` + classColumns + ` FROM classes ORDER BY enroll_students DESC, created_at ASC, id ASC LIMIT $1`
	classes := []models.Class{}
	if err := r.db.SelectContext(ctx, &classes, query, limit); err != nil {
		return nil, fmt.Errorf("top classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class record by ID.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	const query = `SELECT ` + classColumns + ` FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &class, nil
}

// Create persists a class record as given; status is the caller's responsibility.
// An instructor_id with no matching instructor yields ErrForeignKey.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now

	const query = `INSERT INTO classes (id, name, image, instructor_id, instructor_name, instructor_email, available_seats, price, enroll_students, status, created_at, updated_at) VALUES (:id, :name, :image, :instructor_id, :instructor_name, :instructor_email, :available_seats, :price, :enroll_students, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		if isForeignKeyViolation(err) {
			return ErrForeignKey
		}
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of a class in a single statement and returns
// the stored record. A missing class yields sql.ErrNoRows.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error) {
	const query = `UPDATE classes SET status = $2, updated_at = $3 WHERE id = $1 RETURNING ` + classColumns
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id, status, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update class status: %w", err)
	}
	return &class, nil
}
