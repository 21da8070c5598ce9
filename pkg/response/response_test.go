package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raminsh/filmlog/pkg/apperr"
)

func runErrorHandler(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	CustomErrorHandler(err, c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestErrorHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{apperr.AlreadyExists("user_already_exists"), http.StatusConflict, "user_already_exists"},
		{apperr.Unauthenticated("invalid_credentials"), http.StatusUnauthorized, "invalid_credentials"},
		{apperr.PermissionDenied("admin_access_required"), http.StatusForbidden, "admin_access_required"},
		{apperr.NotFound("watch_not_found"), http.StatusNotFound, "watch_not_found"},
		{apperr.InvalidArgument("watch_status_is_final"), http.StatusBadRequest, "watch_status_is_final"},
	}

	for _, tc := range cases {
		status, body := runErrorHandler(t, tc.err)
		assert.Equal(t, tc.wantStatus, status, "error %v", tc.err)
		assert.Equal(t, tc.wantMsg, body.Message)
		assert.Equal(t, "error", body.Status)
	}
}

func TestErrorHandlerNormalizesTokenErrors(t *testing.T) {
	status, body := runErrorHandler(t, apperr.InvalidToken(errors.New("signature mismatch")))

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid_token", body.Message)
	assert.NotContains(t, body.Message, "signature")
}

func TestErrorHandlerHidesInternalCause(t *testing.T) {
	status, body := runErrorHandler(t, apperr.Internal(errors.New("dial tcp: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_server_error", body.Message)
}

func TestErrorHandlerUnclassifiedError(t *testing.T) {
	status, body := runErrorHandler(t, errors.New("something broke"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_server_error", body.Message)
}

func TestErrorHandlerEchoHTTPError(t *testing.T) {
	status, body := runErrorHandler(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not Found", body.Message)
}
