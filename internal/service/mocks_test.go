package service

import (
	"context"
	"database/sql"
	"errors"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/music-school-api/internal/models"
	"github.com/noah-isme/music-school-api/internal/repository"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

// memUserRepo enforces a unique email the way the users_email_key index does.
type memUserRepo struct {
	mu     sync.Mutex
	users  []models.User
	err    error
	lookup func()
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.lookup != nil {
		defer m.lookup()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			copy := u
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			copy := u
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) List(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.User{}, m.users...), nil
}

func (m *memUserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.CreatedAt = time.Now().UTC()
	m.users = append(m.users, *user)
	return nil
}

func (m *memUserRepo) UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Role = role
			copy := m.users[i]
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) Delete(ctx context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memUserRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type memClassRepo struct {
	classes  []models.Class
	topCalls int
	err      error
}

func (m *memClassRepo) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Class{}
	for _, c := range m.classes {
		if filter.Status == "" || c.Status == filter.Status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClassRepo) Top(ctx context.Context, limit int) ([]models.Class, error) {
	m.topCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := append([]models.Class{}, m.classes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EnrollStudents > out[j].EnrollStudents })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memClassRepo) FindByID(ctx context.Context, id string) (*models.Class, error) {
	for _, c := range m.classes {
		if c.ID == id {
			copy := c
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memClassRepo) Create(ctx context.Context, class *models.Class) error {
	if m.err != nil {
		return m.err
	}
	m.classes = append(m.classes, *class)
	return nil
}

func (m *memClassRepo) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (*models.Class, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.classes {
		if m.classes[i].ID == id {
			m.classes[i].Status = status
			copy := m.classes[i]
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

type memSelectionRepo struct {
	selections []models.SelectedClass
	err        error
}

func (m *memSelectionRepo) Create(ctx context.Context, sel *models.SelectedClass) error {
	if m.err != nil {
		return m.err
	}
	sel.CreatedAt = time.Now().UTC()
	m.selections = append(m.selections, *sel)
	return nil
}

func (m *memSelectionRepo) ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error) {
	out := []models.SelectedClass{}
	for _, s := range m.selections {
		if s.Email == email {
			out = append(out, s)
		}
	}
	return out, m.err
}

func (m *memSelectionRepo) ListByClass(ctx context.Context, classID string) ([]models.SelectedClass, error) {
	out := []models.SelectedClass{}
	for _, s := range m.selections {
		if s.ClassID == classID {
			out = append(out, s)
		}
	}
	return out, m.err
}

func (m *memSelectionRepo) Exists(ctx context.Context, email, classID string) (bool, error) {
	for _, s := range m.selections {
		if s.Email == email && s.ClassID == classID {
			return true, nil
		}
	}
	return false, m.err
}

func (m *memSelectionRepo) FindByID(ctx context.Context, id string) (*models.SelectedClass, error) {
	for _, s := range m.selections {
		if s.ID == id {
			copy := s
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memSelectionRepo) Delete(ctx context.Context, id string) (int64, error) {
	for i := range m.selections {
		if m.selections[i].ID == id {
			m.selections = append(m.selections[:i], m.selections[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type memInstructorRepo struct {
	instructors []models.Instructor
	err         error
}

func (m *memInstructorRepo) List(ctx context.Context) ([]models.Instructor, error) {
	return m.instructors, m.err
}

func (m *memInstructorRepo) Top(ctx context.Context, limit int) ([]models.Instructor, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := append([]models.Instructor{}, m.instructors...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].NumberOfStudents > out[j].NumberOfStudents })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memCache stores values as-is; Get copies via the destination's type.
type memCache struct {
	entries map[string]interface{}
	getErr  error
	delErr  error
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]interface{}{}}
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	value, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *[]models.Class:
		*d = value.([]models.Class)
	case *[]models.Instructor:
		*d = value.([]models.Instructor)
	default:
		return errors.New("unsupported cache destination")
	}
	return nil
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *memCache) DeleteByPattern(ctx context.Context, pattern string) error {
	if m.delErr != nil {
		return m.delErr
	}
	for key := range m.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.entries, key)
		}
	}
	return nil
}
