package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/raminsh/filmlog/pkg/apperr"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

func Success(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, SuccessResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func Error(c echo.Context, code int, message string, errDetails interface{}) error {
	return c.JSON(code, ErrorResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Errors:  errDetails,
	})
}

// CustomErrorHandler translates classified errors into the JSON envelope.
// Anything without a known kind is reported as a 500 and logged with its
// cause; the cause itself is never sent to the client.
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		kind := appErr.Kind
		// Token-service failures must not be distinguishable from any
		// other auth failure at the HTTP boundary.
		if kind == apperr.KindInvalidToken {
			kind = apperr.KindUnauthenticated
		}
		if kind == apperr.KindInternal {
			log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unclassified failure")
			Error(c, http.StatusInternalServerError, "internal_server_error", nil)
			return
		}
		Error(c, kind.HTTPStatus(), appErr.Message, nil)
		return
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = http.StatusText(echoErr.Code)
		}
		Error(c, echoErr.Code, msg, nil)
		return
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
	Error(c, http.StatusInternalServerError, "internal_server_error", nil)
}
