package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"

	"github.com/raminsh/filmlog/pkg/constant"
)

// RequestID tags every request with a correlation id and stores a
// request-scoped logger in the echo context.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get("X-Request-Id")
			if requestID == "" {
				requestID = "req_" + ksuid.New().String()
				c.Request().Header.Set("X-Request-Id", requestID)
			}

			c.Response().Header().Set("X-Request-Id", requestID)

			logger := log.With().
				Str("request_id", requestID).
				Logger()
			c.Set(string(constant.CtxKeyLogger), &logger)

			logger.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Str("remote_ip", c.RealIP()).
				Msg("Incoming request")

			return next(c)
		}
	}
}

// GetLogger retrieves the request-scoped logger, falling back to the
// default logger when the middleware did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(string(constant.CtxKeyLogger)).(*zerolog.Logger); ok {
		return logger
	}
	return &log.Logger
}

// GetRequestID retrieves the correlation id from the request headers.
func GetRequestID(c echo.Context) string {
	return c.Request().Header.Get("X-Request-Id")
}
