// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jansetu/jansetu/internal/core/catalog"
	"github.com/jansetu/jansetu/internal/platform/apperr"
	"github.com/jansetu/jansetu/internal/platform/sec"
	"github.com/jansetu/jansetu/pkg/uuidv7"
)

// # Contracts & Types

const (
	// referencePrefix brands every public reference number.
	referencePrefix = "JS"

	// referenceBytes yields 8 hex chars after the prefix ("JS-9F27C41B").
	referenceBytes = 4

	// referenceRetries bounds how often Submit retries a colliding reference.
	referenceRetries = 3

	// trackingTTL keeps the public tracking cache short-lived so status
	// transitions become visible within minutes even if invalidation fails.
	trackingTTL = 5 * time.Minute
)

// CatalogDirectory is the slice of the service catalog the workflow needs:
// validating that an application targets a real service.
type CatalogDirectory interface {
	GetServiceBySlug(context context.Context, slug string) (*catalog.Service, error)
}

// Service implements license application use cases.
type Service struct {
	repository Repository
	cache      TrackingCache
	directory  CatalogDirectory
	logger     *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, cache TrackingCache, directory CatalogDirectory, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		cache:      cache,
		directory:  directory,
		logger:     logger,
	}
}

// # Citizen Flow

/*
Submit files a new application for the given catalog service.

Description: Verifies the license type against the catalog, generates a public
reference, and persists the application with its first timeline event. A
random reference collision is retried with a fresh reference.

Parameters:
  - context: context.Context
  - userID: string (authenticated applicant)
  - licenseType: string (catalog slug)

Returns:
  - *Application: Persisted entity, status pending
  - error: apperr.NotFound on an unknown license type, or storage errors
*/
func (service *Service) Submit(context context.Context, userID, licenseType string) (*Application, error) {
	catalogService, err := service.directory.GetServiceBySlug(context, licenseType)
	if err != nil {
		return nil, err
	}

	app := &Application{
		ID:           uuidv7.New(),
		UserID:       userID,
		LicenseType:  catalogService.Slug,
		ServiceTitle: catalogService.Title,
		Status:       StatusPending,
	}

	for attempt := 0; ; attempt++ {
		reference, err := sec.GenerateReference(referencePrefix, referenceBytes)
		if err != nil {
			return nil, fmt.Errorf("application_service_reference_failed: %w", err)
		}
		app.Reference = reference

		event := &Event{
			ID:     uuidv7.New(),
			Status: StatusPending,
			Note:   "Application Submitted",
		}

		err = service.repository.Create(context, app, event)
		if err == nil {
			break
		}
		if ae := apperr.As(err); ae != nil && ae.Code == "CONFLICT" && attempt < referenceRetries {
			continue
		}
		return nil, err
	}

	service.logger.InfoContext(context, "application_submitted",
		slog.String("application_id", app.ID),
		slog.String("reference", app.Reference),
		slog.String("license_type", app.LicenseType),
	)

	return app, nil
}

// ListMine returns the caller's applications, newest first.
func (service *Service) ListMine(context context.Context, userID string) ([]*Application, error) {
	return service.repository.ListByUser(context, userID)
}

/*
Track resolves a public reference into its anonymous tracking view.

Description: Read-through on the Redis cache. On a miss the application and
its timeline are loaded from PostgreSQL and the snapshot is cached under a
short TTL. Cache failures degrade to a direct database read.

Parameters:
  - context: context.Context
  - reference: string (public reference, e.g. "JS-9F27C41B")

Returns:
  - *TrackingView: Status snapshot with the full event timeline
  - error: apperr.NotFound on an unknown reference
*/
func (service *Service) Track(context context.Context, reference string) (*TrackingView, error) {
	view, err := service.cache.GetTracking(context, reference)
	if err != nil {
		service.logger.WarnContext(context, "tracking_cache_read_failed", slog.Any("error", err))
	}
	if view != nil {
		return view, nil
	}

	app, err := service.repository.FindByReference(context, reference)
	if err != nil {
		return nil, err
	}

	events, err := service.repository.ListEvents(context, app.ID)
	if err != nil {
		return nil, err
	}

	view = &TrackingView{
		Reference:    app.Reference,
		LicenseType:  app.LicenseType,
		ServiceTitle: app.ServiceTitle,
		Status:       app.Status,
		Remarks:      app.Remarks,
		SubmittedAt:  app.CreatedAt,
		UpdatedAt:    app.UpdatedAt,
		Events:       events,
	}

	if err := service.cache.SetTracking(context, reference, view, trackingTTL); err != nil {
		service.logger.WarnContext(context, "tracking_cache_write_failed", slog.Any("error", err))
	}

	return view, nil
}

// # Admin Flow

// List returns applications for the review queue, optionally filtered by
// status, with applicant identity joined in.
func (service *Service) List(context context.Context, status Status) ([]*Application, error) {
	if status != "" && !status.IsValid() {
		return nil, apperr.ValidationError("Unknown status filter")
	}
	return service.repository.ListAll(context, status)
}

// DashboardStats returns the review-queue counters.
func (service *Service) DashboardStats(context context.Context) (*Stats, error) {
	return service.repository.Stats(context)
}

// Approve moves an application to the approved terminal status.
func (service *Service) Approve(context context.Context, applicationID, remarks string) (*Application, error) {
	return service.decide(context, applicationID, StatusApproved, remarks, "Application Approved")
}

// Reject moves an application to the rejected terminal status.
func (service *Service) Reject(context context.Context, applicationID, remarks string) (*Application, error) {
	return service.decide(context, applicationID, StatusRejected, remarks, "Application Rejected")
}

/*
decide applies a terminal transition and records it on the timeline.

Description: Shared by Approve and Reject. The repository re-checks the
stored status inside its transaction, so the early terminal check here is a
fast path, not the guard. The tracking cache is invalidated afterwards; if
that fails the stale entry still expires within trackingTTL.

Parameters:
  - context: context.Context
  - applicationID: string
  - target: Status (StatusApproved or StatusRejected)
  - remarks: string (reviewer note, required)
  - note: string (timeline entry text)

Returns:
  - *Application: Updated entity
  - error: ValidationError on empty remarks, NotFound, or Conflict when
    the application was already decided
*/
func (service *Service) decide(context context.Context, applicationID string, target Status, remarks, note string) (*Application, error) {
	if remarks == "" {
		return nil, apperr.ValidationError("Remarks are required")
	}

	app, err := service.repository.FindByID(context, applicationID)
	if err != nil {
		return nil, err
	}

	if app.Status.IsTerminal() {
		return nil, apperr.Conflict("Application has already been decided")
	}

	app.Status = target
	app.Remarks = remarks

	event := &Event{
		ID:     uuidv7.New(),
		Status: target,
		Note:   note,
	}

	if err := service.repository.UpdateStatus(context, app, event); err != nil {
		return nil, err
	}

	if err := service.cache.InvalidateTracking(context, app.Reference); err != nil {
		service.logger.WarnContext(context, "tracking_cache_invalidate_failed", slog.Any("error", err))
	}

	service.logger.InfoContext(context, "application_decided",
		slog.String("application_id", app.ID),
		slog.String("status", string(target)),
	)

	return app, nil
}
