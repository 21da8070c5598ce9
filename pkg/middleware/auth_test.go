package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/raminsh/filmlog/pkg/apperr"
	"github.com/raminsh/filmlog/pkg/constant"
	"github.com/raminsh/filmlog/pkg/jwt"
)

type mockAdminChecker struct {
	mock.Mock
}

func (m *mockAdminChecker) IsAdmin(ctx context.Context, userUUID string) (bool, error) {
	args := m.Called(ctx, userUUID)
	return args.Bool(0), args.Error(1)
}

func newTestContext(authHeader string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return nil
	}
}

func TestAuthenticateStoresSubject(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	token, err := svc.IssueAccess("user-uuid-1")
	require.NoError(t, err)

	c := newTestContext("Bearer " + token)
	called := false
	err = Authenticate(svc)(okHandler(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)

	subject, err := SubjectFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid-1", subject)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)

	c := newTestContext("")
	called := false
	err := Authenticate(svc)(okHandler(&called))(c)

	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
	assert.False(t, called)
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	token, err := svc.IssueAccess("user-uuid-1")
	require.NoError(t, err)

	for _, header := range []string{
		"Bearer",
		"Bearer ",
		"bearer " + token,
		"Basic dXNlcjpwYXNz",
		"Bearer " + token + " trailing",
	} {
		c := newTestContext(header)
		called := false
		err := Authenticate(svc)(okHandler(&called))(c)

		assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated), "header %q", header)
		assert.False(t, called, "header %q", header)
	}
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	refresh, err := svc.IssueRefresh("user-uuid-1")
	require.NoError(t, err)

	c := newTestContext("Bearer " + refresh)
	called := false
	err = Authenticate(svc)(okHandler(&called))(c)

	// Token failures collapse into plain unauthenticated at this boundary.
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
	assert.False(t, called)
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	checker := new(mockAdminChecker)
	checker.On("IsAdmin", mock.Anything, "admin-uuid").Return(true, nil)

	c := newTestContext("")
	c.Set(string(constant.CtxKeyUserUUID), "admin-uuid")

	called := false
	err := AdminOnly(checker)(okHandler(&called))(c)

	require.NoError(t, err)
	assert.True(t, called)
	checker.AssertExpectations(t)
}

func TestAdminOnlyRejectsNonAdmin(t *testing.T) {
	checker := new(mockAdminChecker)
	checker.On("IsAdmin", mock.Anything, "user-uuid").Return(false, nil)

	c := newTestContext("")
	c.Set(string(constant.CtxKeyUserUUID), "user-uuid")

	called := false
	err := AdminOnly(checker)(okHandler(&called))(c)

	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))
	assert.False(t, called)
}

func TestAdminOnlyRejectsUnauthenticated(t *testing.T) {
	checker := new(mockAdminChecker)

	c := newTestContext("")
	called := false
	err := AdminOnly(checker)(okHandler(&called))(c)

	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
	assert.False(t, called)
	checker.AssertNotCalled(t, "IsAdmin")
}
