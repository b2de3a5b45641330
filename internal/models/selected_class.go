package models

import "time"

// SelectedClass records one student's intent to take one class. The
// display attributes are a snapshot taken at selection time.
type SelectedClass struct {
	ID             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	ClassID        string    `db:"class_id" json:"classId"`
	Name           string    `db:"name" json:"name"`
	Image          string    `db:"image" json:"image"`
	InstructorName string    `db:"instructor_name" json:"instructorName"`
	Price          float64   `db:"price" json:"price"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// SelectClassRequest is the payload for creating a selection. Email
// defaults to the caller's identity.
type SelectClassRequest struct {
	Email          string  `json:"email" validate:"omitempty,email"`
	ClassID        string  `json:"classId" validate:"required"`
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	InstructorName string  `json:"instructorName"`
	Price          float64 `json:"price" validate:"gte=0"`
}
