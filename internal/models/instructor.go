package models

import (
	"time"

	"github.com/lib/pq"
)

// Instructor is a read-only listing owned by the seeding process.
type Instructor struct {
	ID               string         `db:"id" json:"id"`
	Name             string         `db:"name" json:"name"`
	Email            string         `db:"email" json:"email"`
	Image            string         `db:"image" json:"image"`
	NumberOfStudents int            `db:"number_of_students" json:"numberOfStudents"`
	ClassesTaken     pq.StringArray `db:"classes_taken" json:"classesTaken"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
}
