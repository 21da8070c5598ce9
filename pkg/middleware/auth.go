package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/raminsh/filmlog/pkg/apperr"
	"github.com/raminsh/filmlog/pkg/constant"
	"github.com/raminsh/filmlog/pkg/jwt"
)

// AdminChecker resolves whether an authenticated subject holds the admin
// flag. The users usecase satisfies it; the check goes to the store, not
// to a token claim, so revoking the flag takes effect immediately.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userUUID string) (bool, error)
}

// Authenticate extracts and validates the bearer access token, then stores
// the subject uuid in the echo context for downstream handlers.
func Authenticate(tokens *jwt.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperr.Unauthenticated("missing_authorization_header")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" || strings.ContainsRune(token, ' ') {
				return apperr.Unauthenticated("malformed_authorization_header")
			}

			subject, err := tokens.Validate(token, jwt.TypeAccess)
			if err != nil {
				return apperr.AsUnauthenticated(err)
			}

			c.Set(string(constant.CtxKeyUserUUID), subject)
			return next(c)
		}
	}
}

// AdminOnly escalates an already-authenticated request to an admin check.
// Must be registered after Authenticate.
func AdminOnly(checker AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, err := SubjectFromContext(c)
			if err != nil {
				return err
			}

			isAdmin, err := checker.IsAdmin(c.Request().Context(), subject)
			if err != nil {
				return err
			}
			if !isAdmin {
				return apperr.PermissionDenied("admin_access_required")
			}

			return next(c)
		}
	}
}

// SubjectFromContext returns the authenticated subject uuid stored by
// Authenticate.
func SubjectFromContext(c echo.Context) (string, error) {
	subject, ok := c.Get(string(constant.CtxKeyUserUUID)).(string)
	if !ok || subject == "" {
		return "", apperr.Unauthenticated("unauthenticated")
	}
	return subject, nil
}
