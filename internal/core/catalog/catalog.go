// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

// Package catalog exposes the read-only directory of government services
// citizens can apply for. Entries are seeded by migration and addressed by slug.
package catalog

import "time"

// Service represents one government service offered through the portal.
type Service struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Category       string    `json:"category"` // 'business', 'vehicle', 'food', 'property', 'legal', 'security'
	Department     string    `json:"department"`
	Description    string    `json:"description"`
	Fees           string    `json:"fees"`
	ProcessingTime string    `json:"processing_time"`
	CreatedAt      time.Time `json:"-"`
}
