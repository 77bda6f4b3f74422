// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

/*
Package auth implements the user identity and session-issuance layer.

It defines the core domain entity (User) and the logic for registration,
credential verification, and signed-token issuance.

# Architecture

This layer is the "Truth" of the system. The entity defined here has no
transport dependencies and encapsulates all business rules related to
citizen identity.
*/
package auth

import (
	"strings"
	"time"

	"github.com/jansetu/jansetu/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the JanSetu portal.
//
// The password hash is explicitly omitted from JSON: no client-facing
// response ever carries it.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address,omitempty"`
	DOB          *time.Time   `json:"dob,omitempty"`
	GovernmentID string       `json:"government_id,omitempty"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	IsVerified   bool         `json:"is_verified"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// PublicUser is the redacted view returned by registration and login.
type PublicUser struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Role  sec.UserRole `json:"role"`
}

// Public returns the redacted view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// NormalizeEmail lowers and trims an email address.
//
// The normalized form is the natural key for login: it is what gets persisted
// and what every lookup uses, so "A@X.com" and "a@x.com" are the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldPassword  = "password"
	FieldAdminCode = "adminCode"
	FieldToken     = "token"
	FieldUser      = "user"
	FieldMessage   = "message"
)
