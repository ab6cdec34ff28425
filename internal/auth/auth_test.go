package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{Secret: "test-secret", Issuer: "test-issuer"}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testConfig.Secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       "athlete-1",
		"tenant_id": "tenant-1",
		"iss":       testConfig.Issuer,
		"exp":       time.Now().Add(time.Hour).Unix(),
		"scopes":    []string{string(ScopeTrainingsWrite)},
	}
}

func TestParseValidToken(t *testing.T) {
	claims, err := Parse(signToken(t, validClaims()), testConfig)
	require.NoError(t, err)
	require.Equal(t, "athlete-1", claims.Subject)
	require.Equal(t, "tenant-1", claims.TenantID)
	require.True(t, claims.HasScope(ScopeTrainingsWrite))
	require.False(t, claims.HasScope(ScopeTrainingsRead))
	require.True(t, claims.Scopes.HasAny(ScopeTrainingsRead, ScopeTrainingsWrite))
	require.Equal(t, "trainings:write", claims.Scopes.String())
}

func TestParseSpaceSeparatedScopes(t *testing.T) {
	c := validClaims()
	c["scopes"] = "trainings:read  trainings:write"
	claims, err := Parse(signToken(t, c), testConfig)
	require.NoError(t, err)
	require.True(t, claims.HasScope(ScopeTrainingsRead))
	require.True(t, claims.HasScope(ScopeTrainingsWrite))
}

func TestParseRejectsBadTokens(t *testing.T) {
	_, err := Parse("  ", testConfig)
	require.ErrorIs(t, err, ErrMissingToken)

	wrongIssuer := validClaims()
	wrongIssuer["iss"] = "someone-else"
	_, err = Parse(signToken(t, wrongIssuer), testConfig)
	require.ErrorIs(t, err, ErrInvalidToken)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	_, err = Parse(signToken(t, expired), testConfig)
	require.ErrorIs(t, err, ErrInvalidToken)

	noTenant := validClaims()
	delete(noTenant, "tenant_id")
	_, err = Parse(signToken(t, noTenant), testConfig)
	require.ErrorIs(t, err, ErrInvalidToken)

	noExpiry := validClaims()
	delete(noExpiry, "exp")
	_, err = Parse(signToken(t, noExpiry), testConfig)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	var seen *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := NewMiddleware(testConfig, PublicPaths("/healthz")).Wrap(next)

	t.Run("missing header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/trainings/types", nil))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("non bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/trainings/types", nil)
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("public path", func(t *testing.T) {
		seen = nil
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusNoContent, rr.Code)
		require.Nil(t, seen)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/trainings/types", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims()))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusNoContent, rr.Code)
		require.NotNil(t, seen)
		require.Equal(t, "athlete-1", seen.Subject)
	})
}

func TestAnonymousGrantsTrainingScopes(t *testing.T) {
	var seen *Claims
	handler := Anonymous(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, seen.HasScope(ScopeTrainingsRead))
	require.True(t, seen.HasScope(ScopeTrainingsWrite))
}

func TestScopeSet(t *testing.T) {
	set := NewScopeSet(ScopeTrainingsWrite, "", ScopeTrainingsRead, ScopeTrainingsWrite)
	require.Len(t, set, 2)
	require.True(t, set.Has(ScopeTrainingsRead))
	require.False(t, set.HasAny())
	require.False(t, NewScopeSet().HasAny(ScopeTrainingsRead))
	require.Equal(t, "trainings:read trainings:write", set.String())

	var nilClaims *Claims
	require.False(t, nilClaims.HasScope(ScopeTrainingsRead))
}

func TestAuthorize(t *testing.T) {
	_, err := Authorize(context.Background(), ScopeTrainingsRead)
	require.ErrorIs(t, err, ErrMissingToken)

	ctx := WithClaims(context.Background(), &Claims{
		Subject:  "athlete-1",
		TenantID: "tenant-1",
		Scopes:   NewScopeSet(ScopeTrainingsRead),
	})

	claims, err := Authorize(ctx, ScopeTrainingsRead, ScopeTrainingsWrite)
	require.NoError(t, err)
	require.Equal(t, "athlete-1", claims.Subject)

	_, err = Authorize(ctx, ScopeTrainingsWrite)
	require.ErrorIs(t, err, ErrForbidden)
	require.Contains(t, err.Error(), "trainings:write")

	_, err = Authorize(WithClaims(context.Background(), nil))
	require.ErrorIs(t, err, ErrMissingToken)
}
