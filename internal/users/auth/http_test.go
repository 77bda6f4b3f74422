// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jansetu/jansetu/internal/platform/middleware"
	"github.com/jansetu/jansetu/internal/platform/sec"
	"github.com/jansetu/jansetu/internal/users/auth"
)

// newAuthRouter mounts the auth routes behind the real Authenticate middleware
// so the /me flow is exercised end to end.
func newAuthRouter(t *testing.T) chi.Router {
	t.Helper()

	tokenService, err := sec.NewTokenService("handler-test-secret", "jansetu.gov.in")
	require.NoError(t, err)

	service := auth.NewService(newMemoryUserRepository(), tokenService, "")
	handler := auth.NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Mount("/auth", handler.Routes())
	return router
}

func postJSON(t *testing.T, router http.Handler, path string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHandler_Register verifies the 201 response shape and validation failures.
*/
func TestHandler_Register(t *testing.T) {
	router := newAuthRouter(t)

	t.Run("success", func(t *testing.T) {
		recorder := postJSON(t, router, "/auth/register", map[string]any{
			"name":     "Asha Verma",
			"email":    "asha@example.com",
			"phone":    "9876543210",
			"password": "secret1",
		})

		require.Equal(t, http.StatusCreated, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Registered successfully", body["message"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "asha@example.com", user["email"])
		assert.Equal(t, "citizen", user["role"])

		// The public projection must never expose password material.
		_, leaked := user["passwordhash"]
		assert.False(t, leaked)
	})

	t.Run("missing_fields", func(t *testing.T) {
		recorder := postJSON(t, router, "/auth/register", map[string]any{
			"email": "incomplete@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		recorder := postJSON(t, router, "/auth/register", map[string]any{
			"name":     "Asha Again",
			"email":    "asha@example.com",
			"password": "secret1",
		})

		assert.Equal(t, http.StatusConflict, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Email already registered", body["message"])
	})
}

/*
TestHandler_Login_Me walks the login then /me round trip with a real token.
*/
func TestHandler_Login_Me(t *testing.T) {
	router := newAuthRouter(t)

	recorder := postJSON(t, router, "/auth/register", map[string]any{
		"name":     "Asha Verma",
		"email":    "asha@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = postJSON(t, router, "/auth/login", map[string]any{
		"email":    "asha@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "Login successful", body["message"])
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	// /me with the issued token.
	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	meRecorder := httptest.NewRecorder()
	router.ServeHTTP(meRecorder, request)

	require.Equal(t, http.StatusOK, meRecorder.Code)
	meBody := decodeBody(t, meRecorder)
	user, ok := meBody["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "asha@example.com", user["email"])

	// /me without a token.
	anonRecorder := httptest.NewRecorder()
	router.ServeHTTP(anonRecorder, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, anonRecorder.Code)
}

/*
TestHandler_Login_Failure verifies the generic 401 body.
*/
func TestHandler_Login_Failure(t *testing.T) {
	router := newAuthRouter(t)

	recorder := postJSON(t, router, "/auth/login", map[string]any{
		"email":    "ghost@example.com",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Invalid email or password", body["message"])
}
