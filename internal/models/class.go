package models

import (
	"fmt"
	"time"
)

// ClassStatus is the lifecycle state of a class listing.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
)

// ParseClassStatus validates a status filter value.
func ParseClassStatus(raw string) (ClassStatus, error) {
	switch ClassStatus(raw) {
	case ClassStatusPending, ClassStatusApproved:
		return ClassStatus(raw), nil
	default:
		return "", fmt.Errorf("unknown class status %q", raw)
	}
}

// Class represents a course listing submitted by an instructor.
type Class struct {
	ID              string      `db:"id" json:"id"`
	Name            string      `db:"name" json:"name"`
	Image           string      `db:"image" json:"image"`
	InstructorID    *string     `db:"instructor_id" json:"instructorId,omitempty"`
	InstructorName  string      `db:"instructor_name" json:"instructorName"`
	InstructorEmail string      `db:"instructor_email" json:"instructorEmail"`
	AvailableSeats  int         `db:"available_seats" json:"availableSeats"`
	Price           float64     `db:"price" json:"price"`
	EnrollStudents  int         `db:"enroll_students" json:"enrollStudents"`
	Status          ClassStatus `db:"status" json:"status"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updatedAt"`
}

// ClassFilter narrows the catalog listing.
type ClassFilter struct {
	Status ClassStatus
}

// SubmitClassRequest is the instructor payload for a new class. A status
// sent by the client is accepted for compatibility and then ignored.
type SubmitClassRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Image           string  `json:"image" validate:"omitempty,url"`
	InstructorID    *string `json:"instructorId" validate:"omitempty,uuid"`
	InstructorName  string  `json:"instructorName" validate:"max=200"`
	InstructorEmail string  `json:"instructorEmail" validate:"omitempty,email"`
	AvailableSeats  int     `json:"availableSeats" validate:"gte=0"`
	Price           float64 `json:"price" validate:"gte=0"`
	Status          string  `json:"status"`
}
