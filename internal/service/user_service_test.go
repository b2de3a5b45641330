package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

func TestRegisterCreatesUserWithNoRole(t *testing.T) {
	repo := &memUserRepo{}
	svc := NewUserService(repo, nil, nil, nil)

	res, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: "a@x.com", Name: " Ann "})
	require.NoError(t, err)
	assert.True(t, res.Created)
	require.NotNil(t, res.User)
	assert.Equal(t, models.RoleNone, res.User.Role)
	assert.Equal(t, "Ann", res.User.Name)
	_, err = uuid.Parse(res.User.ID)
	assert.NoError(t, err)
}

func TestRegisterTwiceReportsExisting(t *testing.T) {
	repo := &memUserRepo{}
	svc := NewUserService(repo, nil, nil, nil)

	first, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: "a@x.com"})
	require.NoError(t, err)
	second, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: "a@x.com"})
	require.NoError(t, err)

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, MessageUserExists, second.Message)
	assert.Nil(t, second.User)
	assert.Equal(t, 1, repo.count())
}

func TestRegisterEmailIsCaseSensitive(t *testing.T) {
	repo := &memUserRepo{}
	svc := NewUserService(repo, nil, nil, nil)

	_, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: "a@x.com"})
	require.NoError(t, err)
	res, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: "A@x.com"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 2, repo.count())
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(&memUserRepo{}, nil, nil, nil)

	_, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: "nope"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestRegisterStoreFailure(t *testing.T) {
	svc := NewUserService(&memUserRepo{err: errors.New("db down")}, nil, nil, nil)

	_, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: "a@x.com"})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

// Both registrations pass the existence check before either inserts; only
// the unique constraint keeps the directory consistent.
func TestRegisterConcurrentSameEmail(t *testing.T) {
	var lookups sync.WaitGroup
	lookups.Add(2)
	repo := &memUserRepo{}
	repo.lookup = func() {
		lookups.Done()
		lookups.Wait()
	}
	svc := NewUserService(repo, nil, nil, nil)

	results := make([]*models.RegisterResult, 2)
	var g errgroup.Group
	for i := range results {
		i := i
		g.Go(func() error {
			res, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: "race@x.com"})
			results[i] = res
			return err
		})
	}
	require.NoError(t, g.Wait())

	created := 0
	for _, res := range results {
		if res.Created {
			created++
		} else {
			assert.Equal(t, MessageUserExists, res.Message)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, repo.count())
}

func TestPromote(t *testing.T) {
	repo := &memUserRepo{}
	svc := NewUserService(repo, nil, nil, nil)
	res, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: "a@x.com"})
	require.NoError(t, err)

	user, err := svc.Promote(context.Background(), res.User.ID, models.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, user.Role)

	user, err = svc.Promote(context.Background(), res.User.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestPromoteRejectsUnknownRoleAndUser(t *testing.T) {
	svc := NewUserService(&memUserRepo{}, nil, nil, nil)

	_, err := svc.Promote(context.Background(), uuid.NewString(), models.RoleNone)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Promote(context.Background(), uuid.NewString(), models.RoleAdmin)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Promote(context.Background(), "not-a-uuid", models.RoleAdmin)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestRemove(t *testing.T) {
	repo := &memUserRepo{}
	svc := NewUserService(repo, nil, nil, nil)
	res, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: "a@x.com"})
	require.NoError(t, err)

	out, err := svc.Remove(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.DeletedCount)

	_, err = svc.Remove(context.Background(), res.User.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Remove(context.Background(), "42")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestListUsers(t *testing.T) {
	repo := &memUserRepo{}
	svc := NewUserService(repo, nil, nil, nil)
	for _, email := range []string{"a@x.com", "b@x.com"} {
		_, err := svc.Register(context.Background(), models.RegisterUserRequest{Email: email})
		require.NoError(t, err)
	}

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = NewUserService(&memUserRepo{err: errors.New("boom")}, nil, nil, nil).List(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
