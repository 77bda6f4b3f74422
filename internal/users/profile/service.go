// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

/*
Package profile handles citizen profile management.

It provides functionalities for users to view and update their private
identity data (display name, phone, address, date of birth).

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Partial updates: Only the supplied fields are changed; everything else is
    carried through untouched.
*/
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jansetu/jansetu/internal/users/auth"
)

// # Repository Contracts

// Repository defines the persistence contract for profile access.
//
// It is a narrow view of the auth store: the PostgreSQL user repository
// satisfies it directly.
type Repository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error
}

// # Service Layer

// Service orchestrates business logic for citizen profiles.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
GetProfile retrieves the full private identity of a user.

The password hash never leaks: the entity redacts it at the JSON layer.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.repository.FindByID(context, userID)
}

// UpdateInput defines the mutable subset of user profile fields.
//
// Nil pointers mean "leave this field alone" — updating phone alone must not
// disturb name or address.
type UpdateInput struct {
	FullName     *string
	Phone        *string
	Address      *string
	DOB          *time.Time
	GovernmentID *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overlays provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated user profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateInput) (*auth.User, error) {

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.FullName != nil {
		user.Name = *input.FullName
	}

	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if input.Address != nil {
		user.Address = *input.Address
	}

	if input.DOB != nil {
		user.DOB = input.DOB
	}

	if input.GovernmentID != nil {
		user.GovernmentID = *input.GovernmentID
	}

	// Persist changes
	if err := service.repository.Update(context, user); err != nil {
		return nil, fmt.Errorf("profile_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}
