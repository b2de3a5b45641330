package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var instructorRowColumns = []string{"id", "name", "email", "image", "number_of_students", "classes_taken", "created_at"}

func TestInstructorList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewInstructorRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(instructorRowColumns).
		AddRow("i1", "Ann", "ann@x.com", "", 12, "{Piano,Organ}", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM instructors ORDER BY created_at ASC, id ASC")).WillReturnRows(rows)

	instructors, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, instructors, 1)
	assert.Equal(t, []string{"Piano", "Organ"}, []string(instructors[0].ClassesTaken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorTop(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewInstructorRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(instructorRowColumns).
		AddRow("i2", "Bob", "bob@x.com", "", 30, "{}", now).
		AddRow("i1", "Ann", "ann@x.com", "", 12, "{}", now)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY number_of_students DESC, created_at ASC, id ASC LIMIT $1")).
		WithArgs(2).
		WillReturnRows(rows)

	instructors, err := repo.Top(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "i2", instructors[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
