// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jansetu/jansetu/internal/platform/sec"
)

const testSecret = "unit-test-signing-secret"

/*
TestHashPassword verifies the bcrypt round trip.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The hash must never equal the plaintext.
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, sec.CheckPasswordHash("secret1", hash))
	assert.False(t, sec.CheckPasswordHash("secret2", hash))
	assert.False(t, sec.CheckPasswordHash("secret1", ""))
}

/*
TestNewTokenService rejects an empty signing secret.
*/
func TestNewTokenService(t *testing.T) {
	_, err := sec.NewTokenService("", "jansetu.gov.in")
	assert.Error(t, err)

	service, err := sec.NewTokenService(testSecret, "jansetu.gov.in")
	require.NoError(t, err)
	assert.NotNil(t, service)
}

/*
TestTokenService_RoundTrip verifies that a generated token carries the
expected claims back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "jansetu.gov.in")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", "asha@example.com", "citizen", "Asha Verma", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "citizen", claims.Role)
	assert.Equal(t, "Asha Verma", claims.Name)
	assert.Equal(t, "jansetu.gov.in", claims.Issuer)
}

/*
TestTokenService_Expired verifies that an expired token is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "jansetu.gov.in")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", "asha@example.com", "citizen", "Asha Verma", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Tampered verifies that a modified signature segment is rejected.
*/
func TestTokenService_Tampered(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "jansetu.gov.in")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-123", "asha@example.com", "citizen", "Asha Verma", time.Hour)
	require.NoError(t, err)

	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)
	tampered := segments[0] + "." + segments[1] + "." + "AAAA" + segments[2][4:]

	_, err = service.VerifyToken(tampered)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret verifies that a token signed with another secret
is rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	signer, err := sec.NewTokenService(testSecret, "jansetu.gov.in")
	require.NoError(t, err)
	verifier, err := sec.NewTokenService("a-different-secret", "jansetu.gov.in")
	require.NoError(t, err)

	token, err := signer.GenerateAccessToken("user-123", "asha@example.com", "citizen", "Asha Verma", time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestGenerateReference verifies the public reference format.
*/
func TestGenerateReference(t *testing.T) {
	reference, err := sec.GenerateReference("JS", 4)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(reference, "JS-"))
	assert.Len(t, reference, 11)
	assert.Equal(t, strings.ToUpper(reference), reference)

	// Two references must not collide in practice.
	other, err := sec.GenerateReference("JS", 4)
	require.NoError(t, err)
	assert.NotEqual(t, reference, other)
}

/*
TestUserRole_AtLeast verifies the role ordering used for authorization.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleCitizen))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.RoleCitizen.AtLeast(sec.RoleAdmin))

	assert.True(t, sec.RoleCitizen.IsValid())
	assert.False(t, sec.UserRole("superuser").IsValid())
}
