// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package profile

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jansetu/jansetu/internal/platform/middleware"
	requestutil "github.com/jansetu/jansetu/internal/platform/request"
	"github.com/jansetu/jansetu/internal/platform/respond"
	"github.com/jansetu/jansetu/internal/platform/validate"
)

// Handler implements the profile HTTP endpoints.
type Handler struct {
	profileService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{profileService: service}
}

// Routes returns a [chi.Router] for the /profile resource.
//
// Both endpoints require a verified bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.get)
	router.Put("/", handler.update)

	return router
}

// updateRequest mirrors the SPA's profile form payload. Absent fields keep
// their stored values.
type updateRequest struct {
	FullName     *string `json:"fullName"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	DOB          *string `json:"dob"`
	GovernmentID *string `json:"governmentId"`
}

/*
Get returns the caller's full profile, minus the password hash.

GET /profile

Response:
  - 200: User record
  - 401: Missing/invalid token
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.profileService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Update applies a partial profile change and returns the updated record.

PUT /profile

Request:
  - Body: updateRequest (fullName, phone, address, dob, governmentId — all optional)

Response:
  - 200: Updated user record
  - 400: Malformed date of birth
  - 401: Missing/invalid token
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	serviceInput := UpdateInput{
		FullName:     input.FullName,
		Phone:        input.Phone,
		Address:      input.Address,
		GovernmentID: input.GovernmentID,
	}

	if input.DOB != nil && *input.DOB != "" {
		validator := &validate.Validator{}
		validator.Date("dob", *input.DOB)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}

		dob, _ := time.Parse("2006-01-02", *input.DOB)
		serviceInput.DOB = &dob
	}

	user, err := handler.profileService.UpdateProfile(request.Context(), userID, serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
