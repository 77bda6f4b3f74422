// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jansetu/jansetu/internal/platform/apperr"
	"github.com/jansetu/jansetu/internal/platform/sec"
	"github.com/jansetu/jansetu/internal/users/auth"
)

// memoryUserRepository is an in-memory UserRepository for service tests.
type memoryUserRepository struct {
	byEmail map[string]*auth.User
	byID    map[string]*auth.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		byEmail: map[string]*auth.User{},
		byID:    map[string]*auth.User{},
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *auth.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return apperr.Conflict("Email already registered")
	}
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *auth.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

// newTestService wires the service against real bcrypt and a real HS256 signer.
func newTestService(t *testing.T, adminCode string) (*auth.Service, *memoryUserRepository, *sec.TokenService) {
	t.Helper()

	tokenService, err := sec.NewTokenService("service-test-secret", "jansetu.gov.in")
	require.NoError(t, err)

	repository := newMemoryUserRepository()
	return auth.NewService(repository, tokenService, adminCode), repository, tokenService
}

/*
TestService_Register_Login verifies the register then login round trip and
the claims embedded in the issued token.
*/
func TestService_Register_Login(t *testing.T) {
	service, _, tokenService := newTestService(t, "")

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Name:     "Asha Verma",
		Email:    "  Asha@Example.COM ",
		Phone:    "9876543210",
		Password: "secret1",
	})
	require.NoError(t, err)

	// Email is normalized on the way in, role defaults to citizen.
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, sec.RoleCitizen, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "asha@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	claims, err := tokenService.VerifyToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "citizen", claims.Role)
	assert.Equal(t, "Asha Verma", claims.Name)

	expiry := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(auth.SessionTokenTTL), expiry, time.Minute)
}

/*
TestService_Register_DuplicateEmail verifies the case-insensitive conflict.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestService(t, "")

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Name: "Asha Verma", Email: "asha@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Name: "Impostor", Email: "ASHA@example.com", Password: "other-pass",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Login_Generic verifies that an unknown email and a wrong password
yield the byte-identical generic error.
*/
func TestService_Login_Generic(t *testing.T) {
	service, _, _ := newTestService(t, "")

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Name: "Asha Verma", Email: "asha@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), auth.LoginInput{
		Email: "nobody@example.com", Password: "secret1",
	})
	_, wrongPassErr := service.Login(context.Background(), auth.LoginInput{
		Email: "asha@example.com", Password: "wrong-password",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())

	ae := apperr.As(unknownErr)
	require.NotNil(t, ae)
	assert.Equal(t, 401, ae.HTTPStatus)
	assert.Equal(t, "Invalid email or password", ae.Message)
}

/*
TestService_AdminLogin covers the admin code gate, the citizen-role rejection,
and the success path.
*/
func TestService_AdminLogin(t *testing.T) {
	service, repository, _ := newTestService(t, "letmein")

	// Seed a citizen and an admin through the public registration path, then
	// promote one the way provisioning would.
	_, err := service.Register(context.Background(), auth.RegisterInput{
		Name: "Asha Verma", Email: "citizen@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	admin, err := service.Register(context.Background(), auth.RegisterInput{
		Name: "District Officer", Email: "admin@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	admin.Role = sec.RoleAdmin
	require.NoError(t, repository.Update(context.Background(), admin))

	t.Run("wrong_admin_code", func(t *testing.T) {
		_, err := service.AdminLogin(context.Background(), auth.AdminLoginInput{
			Email: "admin@example.com", Password: "secret1", AdminCode: "wrong",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 401, ae.HTTPStatus)
		assert.Equal(t, "Invalid admin code", ae.Message)
	})

	t.Run("citizen_with_correct_password_is_forbidden", func(t *testing.T) {
		_, err := service.AdminLogin(context.Background(), auth.AdminLoginInput{
			Email: "citizen@example.com", Password: "secret1", AdminCode: "letmein",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 403, ae.HTTPStatus)
		assert.Equal(t, "Not an admin account", ae.Message)
	})

	t.Run("citizen_with_wrong_password_stays_generic", func(t *testing.T) {
		// The role must never leak before the password proves out.
		_, err := service.AdminLogin(context.Background(), auth.AdminLoginInput{
			Email: "citizen@example.com", Password: "wrong", AdminCode: "letmein",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 401, ae.HTTPStatus)
		assert.Equal(t, "Invalid email or password", ae.Message)
	})

	t.Run("admin_succeeds", func(t *testing.T) {
		session, err := service.AdminLogin(context.Background(), auth.AdminLoginInput{
			Email: "admin@example.com", Password: "secret1", AdminCode: "letmein",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.Equal(t, sec.RoleAdmin, session.User.Role)
	})
}

// failingUserRepository simulates a storage outage on every operation.
type failingUserRepository struct{}

var errStoreDown = errors.New("postgres_user_repo_query_failed: connection refused")

func (failingUserRepository) Create(ctx context.Context, user *auth.User) error {
	return errStoreDown
}

func (failingUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return nil, errStoreDown
}

func (failingUserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return nil, errStoreDown
}

func (failingUserRepository) Update(ctx context.Context, user *auth.User) error {
	return errStoreDown
}

/*
TestService_Login_StoreFailure verifies that a storage outage during login
surfaces as a server error, not as the generic credential failure.
*/
func TestService_Login_StoreFailure(t *testing.T) {
	tokenService, err := sec.NewTokenService("service-test-secret", "jansetu.gov.in")
	require.NoError(t, err)

	service := auth.NewService(failingUserRepository{}, tokenService, "letmein")

	_, err = service.Login(context.Background(), auth.LoginInput{
		Email: "asha@example.com", Password: "secret1",
	})
	require.Error(t, err)

	// Not an AppError: the boundary converts it to a logged 500, never a 401.
	assert.Nil(t, apperr.As(err))
	assert.ErrorIs(t, err, errStoreDown)

	_, err = service.AdminLogin(context.Background(), auth.AdminLoginInput{
		Email: "asha@example.com", Password: "secret1", AdminCode: "letmein",
	})
	require.Error(t, err)
	assert.Nil(t, apperr.As(err))
	assert.ErrorIs(t, err, errStoreDown)
}

/*
TestService_Me verifies the claims-to-record resolution.
*/
func TestService_Me(t *testing.T) {
	service, _, _ := newTestService(t, "")

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Name: "Asha Verma", Email: "asha@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	found, err := service.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = service.Me(context.Background(), "missing-id")
	assert.True(t, apperr.IsNotFound(err))
}
