package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/music-school-api/internal/handler"
	"github.com/noah-isme/music-school-api/internal/models"
	"github.com/noah-isme/music-school-api/internal/service"
)

type stubRoles map[string]models.UserRole

func (s stubRoles) RoleOf(ctx context.Context, email string) (models.UserRole, error) {
	if role, ok := s[email]; ok {
		return role, nil
	}
	return models.RoleNone, nil
}

type stubAudit struct{ entries []*models.AuditLog }

func (s *stubAudit) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.entries = append(s.entries, log)
	return nil
}

type stubUsers struct{}

func (stubUsers) List(ctx context.Context) ([]models.User, error) { return []models.User{}, nil }
func (stubUsers) Register(ctx context.Context, req models.RegisterUserRequest) (*models.RegisterResult, error) {
	return &models.RegisterResult{Created: true, User: &models.User{Email: req.Email}}, nil
}
func (stubUsers) Promote(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	return &models.User{ID: id, Role: role}, nil
}
func (stubUsers) Remove(ctx context.Context, id string) (*models.DeleteResult, error) {
	return &models.DeleteResult{DeletedCount: 1}, nil
}

type stubClasses struct{}

func (stubClasses) Submit(ctx context.Context, req models.SubmitClassRequest, caller *models.JWTClaims) (*models.Class, error) {
	return &models.Class{ID: "c1", Status: models.ClassStatusPending}, nil
}
func (stubClasses) Approve(ctx context.Context, id string) (*models.Class, error) {
	return &models.Class{ID: id, Status: models.ClassStatusApproved}, nil
}
func (stubClasses) ListAll(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	return []models.Class{}, nil
}
func (stubClasses) TopRanked(ctx context.Context, n int) ([]models.Class, error) {
	return []models.Class{}, nil
}

type stubInstructors struct{}

func (stubInstructors) ListAll(ctx context.Context) ([]models.Instructor, error) {
	return []models.Instructor{}, nil
}
func (stubInstructors) TopRanked(ctx context.Context, n int) ([]models.Instructor, error) {
	return []models.Instructor{}, nil
}

type stubSelections struct{}

func (stubSelections) Select(ctx context.Context, req models.SelectClassRequest, caller *models.JWTClaims) (*models.SelectedClass, error) {
	return &models.SelectedClass{ID: "s1", Email: caller.Email}, nil
}
func (stubSelections) ListForOwner(ctx context.Context, email string, caller *models.JWTClaims) ([]models.SelectedClass, error) {
	return []models.SelectedClass{}, nil
}
func (stubSelections) Unselect(ctx context.Context, id string, caller *models.JWTClaims) (*models.DeleteResult, error) {
	return &models.DeleteResult{DeletedCount: 1}, nil
}

type stubRoster struct{}

func (stubRoster) Export(ctx context.Context, classID, format string) (*service.RosterFile, error) {
	return &service.RosterFile{Filename: "r.csv", ContentType: "text/csv", Body: []byte("Email\n")}, nil
}

type testServer struct {
	engine *gin.Engine
	tokens *service.TokenService
	audit  *stubAudit
}

func newTestServer(t *testing.T, prefix string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService(nil, nil, service.TokenConfig{Secret: "test-secret", Expiry: time.Hour})
	roles := stubRoles{"admin@x.com": models.RoleAdmin, "teach@x.com": models.RoleInstructor}
	audit := &stubAudit{}

	engine := New(Handlers{
		Auth:          handler.NewAuthHandler(tokens),
		User:          handler.NewUserHandler(stubUsers{}, service.NewRoleResolver(nil, nil)),
		Instructor:    handler.NewInstructorHandler(stubInstructors{}),
		Class:         handler.NewClassHandler(stubClasses{}, stubRoster{}),
		SelectedClass: handler.NewSelectedClassHandler(stubSelections{}),
		Metrics:       handler.NewMetricsHandler(service.NewMetricsService(), nil),
	}, Guards{Tokens: tokens, Roles: roles, Audit: audit}, Options{APIPrefix: prefix, Metrics: service.NewMetricsService()})

	return &testServer{engine: engine, tokens: tokens, audit: audit}
}

func (s *testServer) token(t *testing.T, email string) string {
	t.Helper()
	res, err := s.tokens.Issue(context.Background(), models.TokenRequest{Email: email})
	require.NoError(t, err)
	return res.Token
}

func (s *testServer) do(method, path, token, body string) int {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestGuardedRoutesDistinguish401From403(t *testing.T) {
	s := newTestServer(t, "")
	adminToken := s.token(t, "admin@x.com")
	teachToken := s.token(t, "teach@x.com")
	plainToken := s.token(t, "plain@x.com")

	cases := []struct {
		method, path, body string
		allowed            string
	}{
		{http.MethodGet, "/users", "", adminToken},
		{http.MethodPatch, "/users/admin/u1", "", adminToken},
		{http.MethodPatch, "/users/instructor/u1", "", adminToken},
		{http.MethodDelete, "/users/u1", "", adminToken},
		{http.MethodPatch, "/classes/c1/approve", "", adminToken},
		{http.MethodGet, "/classes/c1/roster", "", adminToken},
		{http.MethodPost, "/classes", `{"name":"Piano 101"}`, teachToken},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, s.do(tc.method, tc.path, "", tc.body))
			assert.Equal(t, http.StatusUnauthorized, s.do(tc.method, tc.path, "garbage", tc.body))
			assert.Equal(t, http.StatusForbidden, s.do(tc.method, tc.path, plainToken, tc.body))
			status := s.do(tc.method, tc.path, tc.allowed, tc.body)
			assert.True(t, status == http.StatusOK || status == http.StatusCreated, "status %d", status)
		})
	}
}

func TestAuditedRoutesRecordActor(t *testing.T) {
	s := newTestServer(t, "")
	adminToken := s.token(t, "admin@x.com")

	require.Equal(t, http.StatusOK, s.do(http.MethodPatch, "/users/instructor/u1", adminToken, ""))
	require.Equal(t, http.StatusOK, s.do(http.MethodPatch, "/classes/c1/approve", adminToken, ""))

	require.Len(t, s.audit.entries, 2)
	assert.Equal(t, models.AuditActionPromoteInstructor, s.audit.entries[0].Action)
	assert.Equal(t, "admin@x.com", *s.audit.entries[0].ActorEmail)
	assert.Equal(t, models.AuditActionClassApprove, s.audit.entries[1].Action)
	assert.Equal(t, "c1", *s.audit.entries[1].ResourceID)
}

func TestPublicAndSelectionRoutes(t *testing.T) {
	s := newTestServer(t, "/api/v1")
	student := s.token(t, "s@x.com")

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", ""))
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/", "", ""))
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/jwt", "", `{"email":"s@x.com"}`))
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/users", "", `{"email":"s@x.com"}`))
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/allClass", "", ""))
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/topClass?limit=6", "", ""))
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/allInstructor", "", ""))
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/topInstructor", "", ""))

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/selectedClass?email=s@x.com", "", ""))
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/selectedClass?email=s@x.com", student, ""))
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/selectedClass", "", `{"classId":"c1"}`))
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/selectedClass", student, `{"classId":"c1"}`))
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodDelete, "/api/v1/selectedClass/s1", "", ""))
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/v1/selectedClass/s1", student, ""))

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/users/admin/s@x.com", "", ""))
}
