package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/raminsh/filmlog/pkg/apperr"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the wire shape of both token types: the registered sub/iat/exp
// claims plus a type discriminator.
type Claims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Service issues and validates signed, self-contained tokens. It is
// stateless: everything is derived from the secret and the two TTLs, both
// passed in explicitly at construction.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(secret string, accessTTL, refreshTTL time.Duration) *Service {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess signs a short-lived access token for the given subject.
func (s *Service) IssueAccess(subject string) (string, error) {
	return s.issue(subject, TypeAccess, s.accessTTL)
}

// IssueRefresh signs a long-lived refresh token for the given subject.
// It only entitles the holder to mint new access tokens, never to access
// resources directly.
func (s *Service) IssueRefresh(subject string) (string, error) {
	return s.issue(subject, TypeRefresh, s.refreshTTL)
}

func (s *Service) issue(subject, tokenType string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("subject cannot be empty")
	}
	if len(s.secret) == 0 {
		return "", errors.New("signing secret cannot be empty")
	}

	now := time.Now()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies signature and expiry and checks that the token carries
// the expected type discriminator. All failure modes collapse into a single
// invalid-token error so callers cannot tell them apart.
func (s *Service) Validate(tokenStr, expectedType string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", apperr.InvalidToken(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", apperr.InvalidToken(errors.New("malformed claims"))
	}
	if claims.TokenType != expectedType {
		return "", apperr.InvalidToken(errors.New("unexpected token type"))
	}
	if claims.Subject == "" {
		return "", apperr.InvalidToken(errors.New("missing subject"))
	}

	return claims.Subject, nil
}
