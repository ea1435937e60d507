// Package auth issues and validates learner access tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
)

// ErrInvalidToken is returned for any token that fails validation.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies HS256 access tokens. The subject is the
// learner ID and the role travels as a custom claim.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a new token manager.
// secret must be at least 32 characters for HS256 security.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

type learnerClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Issue creates a token with the configured lifetime.
func (m *TokenManager) Issue(learnerID uuid.UUID, role domain.Role) (string, error) {
	return m.IssueFor(learnerID, role, m.ttl)
}

// IssueFor creates a token valid for ttl.
func (m *TokenManager) IssueFor(learnerID uuid.UUID, role domain.Role, ttl time.Duration) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("issue token: unknown role %q", role)
	}

	now := time.Now()
	claims := learnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   learnerID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role.String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns the learner ID and role it carries.
// Tokens without a role claim are treated as user tokens.
func (m *TokenManager) Validate(token string) (uuid.UUID, domain.Role, error) {
	if token == "" {
		return uuid.Nil, "", fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	parsed, err := jwt.ParseWithClaims(token, &learnerClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*learnerClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, "", fmt.Errorf("%w: bad claims", ErrInvalidToken)
	}

	learnerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}

	role := domain.Role(claims.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if !role.IsValid() {
		return uuid.Nil, "", fmt.Errorf("%w: role %q", ErrInvalidToken, claims.Role)
	}
	return learnerID, role, nil
}
