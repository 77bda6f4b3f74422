// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jansetu/jansetu/internal/platform/apperr"
	"github.com/jansetu/jansetu/internal/platform/sec"
	"github.com/jansetu/jansetu/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating session tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The normalized email of the account.
	//   - role: The role of the account.
	//   - name: The display name of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, email, role, name string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully: the anti-enumeration behavior of
// Login is load-bearing.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider

	// adminCode gates the admin login endpoint. Empty disables the gate.
	adminCode string
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider, adminCode string) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		adminCode:      adminCode,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new citizen.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

/*
Register validates, hashes, and persists a brand new citizen account.

Description: Normalizes the email, handles password hashing, and persists the
new account with the default citizen role. The plaintext password is never
stored or logged.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	email := NormalizeEmail(input.Email)

	// Verify email uniqueness. Return a client-safe Conflict err.
	// The unique index still backstops a concurrent duplicate registration.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email already registered")
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	// Registration always yields a citizen; admin accounts are provisioned out of band.
	user := &User{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: hashedPassword,
		Role:         sec.RoleCitizen,
		IsVerified:   false,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	Token string
	User  *User
}

/*
Login validates user credentials and issues a signed session token.

Description: Verifies identity and performs constant-time password comparison.
An unknown email, a record with a missing/corrupted hash, and a wrong password
all produce the identical generic InvalidCredentials outcome so no signal
distinguishes them.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready token plus the user
  - err: InvalidCredentials or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.authenticate(context, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	return service.issueSession(user)
}

// AdminLoginInput defines credentials for an administrative authentication attempt.
type AdminLoginInput struct {
	Email     string
	Password  string
	AdminCode string
}

/*
AdminLogin is the role-gated variant of Login used by the review dashboard.

Description: If an admin code is configured, it is checked before any
credential work. The password check precedes the role check, so a caller who
never proved the password learns nothing about the account's role.

Parameters:
  - context: context.Context
  - input: AdminLoginInput

Returns:
  - *LoginSession: Transport-ready token plus the user
  - err: Unauthorized (bad code), InvalidCredentials, or Forbidden (non-admin)
*/
func (service *Service) AdminLogin(context context.Context, input AdminLoginInput) (*LoginSession, error) {

	// Gate on the shared admin code first, before touching the store.
	if service.adminCode != "" && input.AdminCode != service.adminCode {
		return nil, apperr.Unauthorized("Invalid admin code")
	}

	user, err := service.authenticate(context, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	// Role check only AFTER the password proved out: a correct password with a
	// citizen role is Forbidden, never Unauthorized.
	if user.Role != sec.RoleAdmin {
		return nil, apperr.Forbidden("Not an admin account")
	}

	return service.issueSession(user)
}

/*
Me resolves the freshest account state for an authenticated identity.

Parameters:
  - context: context.Context
  - userID: string (taken from verified token claims)

Returns:
  - *User: The hydrated account
  - err: apperr.NotFound if the record vanished, or storage failures
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// authenticate resolves and verifies credentials, collapsing every failure
// mode into the same generic error.
func (service *Service) authenticate(context context.Context, email, password string) (*User, error) {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))

	// Unknown email. Generic message to prevent enumeration.
	if apperr.IsNotFound(err) {
		return nil, apperr.InvalidCredentials()
	}

	// A storage failure is not a credential failure: it must surface as a
	// server error, never as the generic 401.
	if err != nil {
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	// A missing or corrupted hash is indistinguishable from a wrong password.
	if user.PasswordHash == "" {
		return nil, apperr.InvalidCredentials()
	}

	// bcrypt comparison is constant-time to prevent timing attacks.
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	return user, nil
}

// issueSession signs a 7-day token embedding id, email, role, and name.
func (service *Service) issueSession(user *User) (*LoginSession, error) {
	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Email, string(user.Role), user.Name, SessionTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{Token: token, User: user}, nil
}
