// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package application

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jansetu/jansetu/internal/platform/middleware"
	requestutil "github.com/jansetu/jansetu/internal/platform/request"
	"github.com/jansetu/jansetu/internal/platform/respond"
	"github.com/jansetu/jansetu/internal/platform/sec"
	"github.com/jansetu/jansetu/internal/platform/validate"
)

// Handler implements the application HTTP endpoints.
type Handler struct {
	applicationService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{applicationService: service}
}

// Routes returns a [chi.Router] for the /applications resource.
//
// Tracking is public, submission and listing require a bearer token, and the
// review endpoints require the admin role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/track/{reference}", handler.track)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.submit)
		protected.Get("/mine", handler.listMine)
	})

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Get("/", handler.list)
		admin.Get("/stats", handler.stats)
		admin.Post("/{id}/approve", handler.approve)
		admin.Post("/{id}/reject", handler.reject)
	})

	return router
}

// submitRequest is the application form payload.
type submitRequest struct {
	LicenseType string `json:"licenseType"`
}

// decisionRequest carries the reviewer's note for approve/reject.
type decisionRequest struct {
	Remarks string `json:"remarks"`
}

/*
Submit files a new application for the authenticated citizen.

POST /applications

Request:
  - Body: {"licenseType": "<catalog slug>"}

Response:
  - 201: {"message": ..., "application": {...}}
  - 400: Missing or malformed license type
  - 404: Unknown license type
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("licenseType", input.LicenseType).Slug("licenseType", input.LicenseType)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	app, err := handler.applicationService.Submit(request.Context(), userID, input.LicenseType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

/*
ListMine returns the caller's applications.

GET /applications/mine

Response:
  - 200: {"applications": [...]}
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	applications, err := handler.applicationService.ListMine(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"applications": applications})
}

/*
Track resolves a public reference number. No authentication required.

GET /applications/track/{reference}

Response:
  - 200: Tracking view with the event timeline
  - 404: Unknown reference
*/
func (handler *Handler) track(writer http.ResponseWriter, request *http.Request) {
	reference := requestutil.Param(request, "reference")

	validator := &validate.Validator{}
	validator.Required("reference", reference).MaxLen("reference", reference, 32)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.applicationService.Track(request.Context(), reference)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
List returns the admin review queue.

GET /applications?status=pending

Response:
  - 200: {"applications": [...]} including applicant name and email
  - 400: Unknown status filter
  - 403: Caller is not an admin
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	status := request.URL.Query().Get("status")

	if status != "" {
		validator := &validate.Validator{}
		validator.OneOf("status", status,
			string(StatusPending), string(StatusProcessing),
			string(StatusApproved), string(StatusRejected),
		)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	applications, err := handler.applicationService.List(request.Context(), Status(status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"applications": applications})
}

/*
Stats returns the review-queue counters for the admin dashboard.

GET /applications/stats

Response:
  - 200: Stats object
  - 403: Caller is not an admin
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.applicationService.DashboardStats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

/*
Approve closes an application as approved.

POST /applications/{id}/approve

Request:
  - Body: {"remarks": "<reviewer note>"}

Response:
  - 200: {"message": ..., "application": {...}}
  - 400: Missing remarks
  - 404: Unknown application
  - 409: Already decided
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	handler.decide(writer, request, handler.applicationService.Approve, "Application approved")
}

/*
Reject closes an application as rejected.

POST /applications/{id}/reject

Request:
  - Body: {"remarks": "<reviewer note>"}

Response:
  - 200: {"message": ..., "application": {...}}
  - 400: Missing remarks
  - 404: Unknown application
  - 409: Already decided
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	handler.decide(writer, request, handler.applicationService.Reject, "Application rejected")
}

// decide factors the shared approve/reject request handling.
func (handler *Handler) decide(
	writer http.ResponseWriter,
	request *http.Request,
	action func(ctx context.Context, id, remarks string) (*Application, error),
	message string,
) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.Required("id", id).UUID("id", id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input decisionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator = &validate.Validator{}
	validator.Required("remarks", input.Remarks)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	app, err := action(request.Context(), id, input.Remarks)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message":     message,
		"application": app,
	})
}
