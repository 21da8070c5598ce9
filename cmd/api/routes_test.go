package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	movieDelivery "github.com/raminsh/filmlog/internal/domain/movies/delivery"
	ratingDelivery "github.com/raminsh/filmlog/internal/domain/ratings/delivery"
	userDelivery "github.com/raminsh/filmlog/internal/domain/users/delivery"
	watchDelivery "github.com/raminsh/filmlog/internal/domain/watchlist/delivery"
	"github.com/raminsh/filmlog/pkg/jwt"
)

type staticAdminChecker struct {
	admin bool
}

func (s staticAdminChecker) IsAdmin(ctx context.Context, userUUID string) (bool, error) {
	return s.admin, nil
}

// newTestServer mounts the real route table with nil usecases behind the
// handlers. Requests must be stopped by the route middleware before any
// handler runs.
func newTestServer(t *testing.T) (*echo.Echo, *jwt.Service) {
	t.Helper()

	tokens := jwt.NewService("routes-test-secret", time.Minute, time.Hour)
	e := echo.New()
	setupRoutes(
		e,
		userDelivery.NewHandler(nil),
		movieDelivery.NewMovieHandler(nil),
		movieDelivery.NewGenreHandler(nil),
		watchDelivery.NewHandler(nil),
		ratingDelivery.NewRatingHandler(nil),
		tokens,
		staticAdminChecker{admin: false},
	)
	return e, tokens
}

func TestCatalogReadsRequireToken(t *testing.T) {
	e, _ := newTestServer(t)

	paths := []string{
		"/api/v1/genres",
		"/api/v1/genres/genre-1",
		"/api/v1/movies",
		"/api/v1/movies/movie-1",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestCatalogReadsRejectRefreshToken(t *testing.T) {
	e, tokens := newTestServer(t)

	refresh, err := tokens.IssueRefresh("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+refresh)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminWritesRejectNonAdmin(t *testing.T) {
	e, tokens := newTestServer(t)

	access, err := tokens.IssueAccess("user-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/genres", strings.NewReader(`{"name":"Drama"}`))
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+access)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
