// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package catalog

import (
	"context"
	"log/slog"

	"github.com/jansetu/jansetu/pkg/slug"
)

type Catalog struct {
	repo   Repository
	logger *slog.Logger
}

func NewCatalog(repo Repository, logger *slog.Logger) *Catalog {
	return &Catalog{
		repo:   repo,
		logger: logger,
	}
}

func (catalog *Catalog) ListServices(context context.Context) ([]*Service, error) {
	return catalog.repo.ListServices(context)
}

// GetService resolves a service by slug. The input is slugified first, so
// "Income-Certificate" and "income-certificate" resolve identically.
func (catalog *Catalog) GetService(context context.Context, identifier string) (*Service, error) {
	return catalog.repo.GetServiceBySlug(context, slug.From(identifier))
}
