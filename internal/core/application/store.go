// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package application

import (
	"context"
	"time"
)

// Repository defines the data access contract for applications and their
// event timelines.
//
// # Transactional Contract
//
// Create and UpdateStatus must persist the application row and its event in a
// single transaction so the timeline never drifts from the current status.
type Repository interface {
	Create(context context.Context, app *Application, event *Event) error
	FindByID(context context.Context, id string) (*Application, error)
	FindByReference(context context.Context, reference string) (*Application, error)
	ListByUser(context context.Context, userID string) ([]*Application, error)
	ListAll(context context.Context, status Status) ([]*Application, error)
	ListEvents(context context.Context, applicationID string) ([]*Event, error)
	UpdateStatus(context context.Context, app *Application, event *Event) error
	Stats(context context.Context) (*Stats, error)
}

// TrackingCache is the volatile read-through store for the public tracking
// endpoint. A cache miss is signalled by a nil view and a nil error.
type TrackingCache interface {
	GetTracking(context context.Context, reference string) (*TrackingView, error)
	SetTracking(context context.Context, reference string, view *TrackingView, ttl time.Duration) error
	InvalidateTracking(context context.Context, reference string) error
}
