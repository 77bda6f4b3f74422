// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jansetu/jansetu/internal/platform/middleware"
	"github.com/jansetu/jansetu/internal/platform/sec"
)

// stubVerifier accepts exactly one token string and returns fixed claims.
type stubVerifier struct {
	validToken string
	claims     *sec.AuthClaims
}

func (s *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == s.validToken {
		return s.claims, nil
	}
	return nil, errors.New("bad token")
}

func newAuthStack(t *testing.T, role string, terminal http.Handler, extra ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()

	verifier := &stubVerifier{
		validToken: "good-token",
		claims:     &sec.AuthClaims{UserID: "user-123", Email: "asha@example.com", Role: role},
	}

	handler := terminal
	for i := len(extra) - 1; i >= 0; i-- {
		handler = extra[i](handler)
	}
	return middleware.Authenticate(verifier)(handler)
}

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

/*
TestAuthenticate_Anonymous verifies that requests without an Authorization
header pass through as anonymous.
*/
func TestAuthenticate_Anonymous(t *testing.T) {
	handler := newAuthStack(t, "citizen", http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Nil(t, middleware.GetUser(request.Context()))
		writer.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestAuthenticate_MalformedHeader verifies the 401 on a non-Bearer header.
*/
func TestAuthenticate_MalformedHeader(t *testing.T) {
	handler := newAuthStack(t, "citizen", okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Token abcdef")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid authorization format")
}

/*
TestAuthenticate_BadToken verifies the 401 on a token the verifier rejects.
*/
func TestAuthenticate_BadToken(t *testing.T) {
	handler := newAuthStack(t, "citizen", okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer forged-token")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid or expired token")
}

/*
TestAuthenticate_ValidToken verifies claims injection into the request context.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	handler := newAuthStack(t, "citizen", http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := middleware.GetUser(request.Context())
		require.NotNil(t, claims)
		assert.Equal(t, "user-123", claims.UserID)
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good-token")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireAuth verifies that anonymous requests are blocked with 401.
*/
func TestRequireAuth(t *testing.T) {
	handler := newAuthStack(t, "citizen", okHandler, middleware.RequireAuth)

	// Anonymous: blocked.
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated: allowed.
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireRole distinguishes 401 (anonymous) from 403 (wrong role).
*/
func TestRequireRole(t *testing.T) {
	t.Run("anonymous_gets_401", func(t *testing.T) {
		handler := newAuthStack(t, "citizen", okHandler, middleware.RequireRole(sec.RoleAdmin))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("citizen_gets_403", func(t *testing.T) {
		handler := newAuthStack(t, "citizen", okHandler, middleware.RequireRole(sec.RoleAdmin))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer good-token")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Insufficient permissions")
	})

	t.Run("admin_passes", func(t *testing.T) {
		handler := newAuthStack(t, "admin", okHandler, middleware.RequireRole(sec.RoleAdmin))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer good-token")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
