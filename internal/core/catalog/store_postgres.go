// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jansetu/jansetu/internal/platform/apperr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListServices returns every service in the directory, ordered by title.
func (repository *PostgresRepository) ListServices(context context.Context) ([]*Service, error) {
	const query = `
		SELECT slug, title, category, department, description, fees,
		       processingtime, createdat
		FROM core.service
		ORDER BY title`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_catalog_repo_list_failed: %w", err)
	}
	defer rows.Close()

	services := []*Service{}
	for rows.Next() {
		service := &Service{}
		err := rows.Scan(
			&service.Slug,
			&service.Title,
			&service.Category,
			&service.Department,
			&service.Description,
			&service.Fees,
			&service.ProcessingTime,
			&service.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_catalog_repo_scan_failed: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_catalog_repo_rows_failed: %w", err)
	}

	return services, nil
}

// GetServiceBySlug retrieves a single service by its slug.
func (repository *PostgresRepository) GetServiceBySlug(context context.Context, slug string) (*Service, error) {
	const query = `
		SELECT slug, title, category, department, description, fees,
		       processingtime, createdat
		FROM core.service
		WHERE slug = $1`

	service := &Service{}
	err := repository.pool.QueryRow(context, query, slug).Scan(
		&service.Slug,
		&service.Title,
		&service.Category,
		&service.Department,
		&service.Description,
		&service.Fees,
		&service.ProcessingTime,
		&service.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Service")
		}
		return nil, fmt.Errorf("postgres_catalog_repo_query_failed: %w", err)
	}

	return service, nil
}
