// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/jansetu/jansetu/internal/platform/request"
	"github.com/jansetu/jansetu/internal/platform/respond"
	"github.com/jansetu/jansetu/internal/platform/validate"
)

// Handler implements the service directory HTTP endpoints.
type Handler struct {
	catalog *Catalog
}

// NewHandler constructs a new [Handler].
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// Routes returns a [chi.Router] for the /services resource. Both endpoints
// are public.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.get)

	return router
}

/*
List returns the full service directory.

GET /services

Response:
  - 200: {"services": [...]}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	services, err := handler.catalog.ListServices(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"services": services})
}

/*
Get returns a single service by slug.

GET /services/{slug}

Response:
  - 200: Service record
  - 404: Unknown slug
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	validator := &validate.Validator{}
	validator.Required("slug", slug).MaxLen("slug", slug, 80)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	service, err := handler.catalog.GetService(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, service)
}
