// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

// Package application implements license application workflows: citizens
// submit applications for catalog services, track their progress by a public
// reference number, and admins review, approve, or reject them.
package application

import "time"

// # Status Lifecycle

// Status is the review state of an application.
//
// Transitions are forward-only: pending and processing applications can be
// approved or rejected; approved and rejected are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

// IsTerminal reports whether no further transitions are allowed.
func (status Status) IsTerminal() bool {
	return status == StatusApproved || status == StatusRejected
}

// IsValid reports whether the value is a recognized status.
func (status Status) IsValid() bool {
	switch status {
	case StatusPending, StatusProcessing, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// # Entities

// Application is one citizen's request for a government license.
//
// Reference is the short public identifier (e.g. "JS-9F27C41B") printed on
// receipts; it is the only key exposed on the unauthenticated tracking
// endpoint. ApplicantName and ApplicantEmail are hydrated only by the admin
// listing query.
type Application struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	LicenseType  string    `json:"license_type"`
	ServiceTitle string    `json:"service_title"`
	Reference    string    `json:"reference"`
	Status       Status    `json:"status"`
	Remarks      string    `json:"remarks,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	ApplicantName  string `json:"applicant_name,omitempty"`
	ApplicantEmail string `json:"applicant_email,omitempty"`
}

// Event is one append-only entry in an application's timeline.
type Event struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"-"`
	Status        Status    `json:"status"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"created_at"`
}

// TrackingView is the public projection served on the tracking endpoint. It
// deliberately omits the applicant's identity.
type TrackingView struct {
	Reference    string    `json:"reference"`
	LicenseType  string    `json:"license_type"`
	ServiceTitle string    `json:"service_title"`
	Status       Status    `json:"status"`
	Remarks      string    `json:"remarks,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Events       []*Event  `json:"events"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalApplications      int `json:"total_applications"`
	PendingReview          int `json:"pending_review"`
	ProcessingApplications int `json:"processing_applications"`
	ApprovedToday          int `json:"approved_today"`
	RejectedApplications   int `json:"rejected_applications"`
}
