package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

func TestInstructorDirectory(t *testing.T) {
	repo := &memInstructorRepo{instructors: []models.Instructor{
		{ID: "a", NumberOfStudents: 5},
		{ID: "b", NumberOfStudents: 12},
		{ID: "c", NumberOfStudents: 5},
	}}
	cache := newMemCache()
	svc := NewInstructorService(repo, NewCacheService(cache, nil, time.Minute, nil, true), 2, nil)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	top, err := svc.TopRanked(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].ID)
	assert.Equal(t, "a", top[1].ID)
	assert.Contains(t, cache.entries, "instructors:top:2")

	everyone, err := svc.TopRanked(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, everyone, 3)

	_, err = svc.TopRanked(context.Background(), 1000)
	require.NoError(t, err)
	assert.Contains(t, cache.entries, "instructors:top:100")
	assert.NotContains(t, cache.entries, "instructors:top:1000")
}

func TestInstructorDirectoryFailure(t *testing.T) {
	svc := NewInstructorService(&memInstructorRepo{err: errors.New("down")}, nil, 0, nil)

	_, err := svc.TopRanked(context.Background(), 3)
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	_, err = svc.ListAll(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
