// Package auth validates bearer tokens issued by the identity service.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds signer verification parameters.
type Config struct {
	Secret string
	Issuer string
}

// Claims identifies the athlete a request acts for.
type Claims struct {
	Subject   string
	TenantID  string
	Scopes    ScopeSet
	ExpiresAt time.Time
}

var (
	// ErrMissingToken is returned when the Authorization header is absent.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken wraps parsing/validation errors.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// tokenClaims is the wire shape of tokens minted by the identity service.
type tokenClaims struct {
	TenantID string `json:"tenant_id"`
	Scopes   any    `json:"scopes"`
	jwt.RegisteredClaims
}

// Parse validates an HS256 token and returns its claims. Tokens must carry
// sub, tenant_id and exp.
func Parse(token string, cfg Config) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if tc.Subject == "" || tc.TenantID == "" {
		return nil, fmt.Errorf("%w: sub and tenant_id are required", ErrInvalidToken)
	}

	return &Claims{
		Subject:   tc.Subject,
		TenantID:  tc.TenantID,
		Scopes:    parseScopes(tc.Scopes),
		ExpiresAt: tc.ExpiresAt.Time,
	}, nil
}

// HasScope reports whether the claim set includes scope.
func (c *Claims) HasScope(scope Scope) bool {
	return c != nil && c.Scopes.Has(scope)
}
