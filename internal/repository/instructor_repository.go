package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/music-school-api/internal/models"
)

const instructorColumns = `id, name, email, image, number_of_students, classes_taken, created_at`

// InstructorRepository reads instructor listings.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs an InstructorRepository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// List returns every instructor in insertion order.
func (r *InstructorRepository) List(ctx context.Context) ([]models.Instructor, error) {
	const query = `SELECT ` + instructorColumns + ` FROM instructors ORDER BY created_at ASC, id ASC`
	instructors := []models.Instructor{}
	if err := r.db.SelectContext(ctx, &instructors, query); err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	return instructors, nil
}

// Top returns at most limit instructors ordered by number_of_students descending.
func (r *InstructorRepository) Top(ctx context.Context, limit int) ([]models.Instructor, error) {
	const query = `SELECT ` + instructorColumns + ` FROM instructors ORDER BY number_of_students DESC, created_at ASC, id ASC LIMIT $1`
	instructors := []models.Instructor{}
	if err := r.db.SelectContext(ctx, &instructors, query, limit); err != nil {
		return nil, fmt.Errorf("top instructors: %w", err)
	}
	return instructors, nil
}
