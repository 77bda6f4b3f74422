// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package catalog

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListServices(context context.Context) ([]*Service, error)
	GetServiceBySlug(context context.Context, slug string) (*Service, error)
}
