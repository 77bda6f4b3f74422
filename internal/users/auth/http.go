// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jansetu/jansetu/internal/platform/middleware"
	requestutil "github.com/jansetu/jansetu/internal/platform/request"
	"github.com/jansetu/jansetu/internal/platform/respond"
	"github.com/jansetu/jansetu/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (Registration, Login,
// Admin Login, identity echo). This layer is strictly responsible for
// transport concerns (status codes, headers, JSON).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register    : Creates a new citizen account.
//   - POST /login       : Authenticates and returns a JWT.
//   - POST /admin-login : Role-gated variant for the review dashboard.
//   - GET  /me          : Returns the fresh account behind a valid token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/admin-login", handler.adminLogin)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	AdminCode string `json:"adminCode"`
}

/*
Register handles the creation of a new citizen account.

POST /auth/register

Description: Validates input, checks for identity conflicts, and persists
a new user to the database.

Request:
  - Body: registerRequest (Name, Email, Phone optional, Password)

Response:
  - 201: {message, user:{id,name,email,role}}
  - 400: Missing name/email/password
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldMessage: "Registered successfully",
		FieldUser:    user.Public(),
	})
}

/*
Login authenticates a citizen and issues a session token.

POST /auth/login

Description: Verifies credentials and returns a signed 7-day JWT alongside a
redacted user view. Every credential failure yields the same generic 401.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: {message, token, user}
  - 400: Missing email/password
  - 401: Invalid email or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldMessage: "Login successful",
		FieldToken:   session.Token,
		FieldUser:    session.User.Public(),
	})
}

/*
AdminLogin authenticates an administrator for the review dashboard.

POST /auth/admin-login

Description: Checks the configured admin code before credentials, then
requires the admin role after the password verifies.

Request:
  - Body: adminLoginRequest (Email, Password, AdminCode)

Response:
  - 200: {message, token, user}
  - 401: Invalid admin code or invalid credentials
  - 403: Correct password but not an admin account
*/
func (handler *Handler) adminLogin(writer http.ResponseWriter, request *http.Request) {
	var input adminLoginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.AdminLogin(request.Context(), AdminLoginInput{
		Email:     input.Email,
		Password:  input.Password,
		AdminCode: input.AdminCode,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldMessage: "Admin login successful",
		FieldToken:   session.Token,
		FieldUser:    session.User.Public(),
	})
}

/*
Me returns the fresh account record behind a verified token.

GET /auth/me

Response:
  - 200: {user}
  - 401: Missing/invalid/expired token
  - 404: Account no longer exists
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldUser: user,
	})
}
