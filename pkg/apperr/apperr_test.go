package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindAlreadyExists:    http.StatusConflict,
		KindUnauthenticated:  http.StatusUnauthorized,
		KindInvalidToken:     http.StatusUnauthorized,
		KindPermissionDenied: http.StatusForbidden,
		KindNotFound:         http.StatusNotFound,
		KindInvalidArgument:  http.StatusBadRequest,
		KindInternal:         http.StatusInternalServerError,
	}

	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), "kind %s", kind)
	}
}

func TestKindOfUnwrapsChain(t *testing.T) {
	inner := NotFound("user_not_found")
	wrapped := fmt.Errorf("fetching profile: %w", inner)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain error")))
}

func TestAsUnauthenticatedNormalizesTokenErrors(t *testing.T) {
	err := AsUnauthenticated(InvalidToken(errors.New("signature mismatch")))
	assert.True(t, IsKind(err, KindUnauthenticated))

	// The normalized error must not expose the underlying cause.
	assert.Equal(t, "invalid_token", err.Error())
}

func TestAsUnauthenticatedPassesOtherKindsThrough(t *testing.T) {
	notFound := NotFound("user_not_found")
	assert.Equal(t, notFound, AsUnauthenticated(notFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("duplicate entry")
	err := Wrap(KindAlreadyExists, "user_already_exists", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "user_already_exists")
}
