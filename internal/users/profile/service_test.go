// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package profile_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jansetu/jansetu/internal/platform/apperr"
	"github.com/jansetu/jansetu/internal/platform/sec"
	"github.com/jansetu/jansetu/internal/users/auth"
	"github.com/jansetu/jansetu/internal/users/profile"
)

// memoryRepository stores one user and records Update calls.
type memoryRepository struct {
	user    *auth.User
	updates int
}

func (r *memoryRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	if r.user == nil || r.user.ID != id {
		return nil, apperr.NotFound("User")
	}
	copied := *r.user
	return &copied, nil
}

func (r *memoryRepository) Update(ctx context.Context, user *auth.User) error {
	r.user = user
	r.updates++
	return nil
}

func stringPtr(s string) *string { return &s }

func newProfileService(user *auth.User) (*profile.Service, *memoryRepository) {
	repository := &memoryRepository{user: user}
	return profile.NewService(repository, slog.Default()), repository
}

func seedUser() *auth.User {
	return &auth.User{
		ID:      "user-123",
		Name:    "Asha Verma",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "42 MG Road, Pune",
		Role:    sec.RoleCitizen,
	}
}

/*
TestService_GetProfile verifies profile lookup and the missing-user case.
*/
func TestService_GetProfile(t *testing.T) {
	service, _ := newProfileService(seedUser())

	user, err := service.GetProfile(context.Background(), "user-123")
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", user.Name)

	_, err = service.GetProfile(context.Background(), "missing")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_UpdateProfile_Partial verifies that updating one field leaves the
rest untouched.
*/
func TestService_UpdateProfile_Partial(t *testing.T) {
	service, repository := newProfileService(seedUser())

	updated, err := service.UpdateProfile(context.Background(), "user-123", profile.UpdateInput{
		Phone: stringPtr("9000000000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "9000000000", updated.Phone)
	assert.Equal(t, "Asha Verma", updated.Name)
	assert.Equal(t, "42 MG Road, Pune", updated.Address)
	assert.Equal(t, 1, repository.updates)
}

/*
TestService_UpdateProfile_AllFields verifies overlaying the full field set.
*/
func TestService_UpdateProfile_AllFields(t *testing.T) {
	service, _ := newProfileService(seedUser())

	dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	updated, err := service.UpdateProfile(context.Background(), "user-123", profile.UpdateInput{
		FullName:     stringPtr("Asha V. Sharma"),
		Phone:        stringPtr("9000000000"),
		Address:      stringPtr("7 Residency Road, Pune"),
		DOB:          &dob,
		GovernmentID: stringPtr("ABCDE1234F"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Asha V. Sharma", updated.Name)
	assert.Equal(t, "7 Residency Road, Pune", updated.Address)
	require.NotNil(t, updated.DOB)
	assert.True(t, dob.Equal(*updated.DOB))
	assert.Equal(t, "ABCDE1234F", updated.GovernmentID)

	// Email is not part of the profile surface.
	assert.Equal(t, "asha@example.com", updated.Email)
}

/*
TestService_UpdateProfile_UnknownUser verifies the 404 path.
*/
func TestService_UpdateProfile_UnknownUser(t *testing.T) {
	service, repository := newProfileService(seedUser())

	_, err := service.UpdateProfile(context.Background(), "missing", profile.UpdateInput{
		Phone: stringPtr("9000000000"),
	})
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, 0, repository.updates)
}
