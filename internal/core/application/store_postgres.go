// Copyright (c) 2026 JanSetu. All rights reserved.
// Author: dev@jansetu.in

package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jansetu/jansetu/internal/platform/apperr"
	"github.com/jansetu/jansetu/internal/platform/dberr"
)

// # Application Repository

// PostgresRepository implements the Repository interface using pgx.
//
// Application rows live in core.application, their timelines in
// core.application_event. The service title is hydrated through a join on
// core.service so callers never chase the slug themselves.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const selectColumns = `
	a.id, a.userid, a.licensetype, COALESCE(s.title, a.licensetype),
	a.reference, a.status, a.remarks, a.createdat, a.updatedat`

/*
Create persists a new application together with its first timeline event.

Description: Runs inside a single transaction so an application can never
exist without a timeline. The unique index on reference turns the (very
unlikely) random collision into apperr.Conflict, which the service layer
retries with a fresh reference.

Parameters:
  - context: context.Context
  - app: *Application
  - event: *Event (initial timeline entry)

Returns:
  - error: apperr.Conflict on a reference collision, or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, app *Application, event *Event) error {
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	event.ApplicationID = app.ID
	event.CreatedAt = now

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_application_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	const insertApplication = `
		INSERT INTO core.application (
			id, userid, licensetype, reference, status, remarks, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = transaction.Exec(context, insertApplication,
		app.ID,
		app.UserID,
		app.LicenseType,
		app.Reference,
		app.Status,
		app.Remarks,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Reference already in use")
	}

	if err := insertEvent(context, transaction, event); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_application_repo_commit_failed: %w", err)
	}

	return nil
}

// FindByID retrieves a single application by its UUID.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Application, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM core.application a
		LEFT JOIN core.service s ON s.slug = a.licensetype
		WHERE a.id = $1`

	return repository.scanOne(context, query, id)
}

// FindByReference retrieves a single application by its public reference.
func (repository *PostgresRepository) FindByReference(context context.Context, reference string) (*Application, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM core.application a
		LEFT JOIN core.service s ON s.slug = a.licensetype
		WHERE a.reference = $1`

	return repository.scanOne(context, query, reference)
}

// ListByUser returns all applications submitted by one citizen, newest first.
func (repository *PostgresRepository) ListByUser(context context.Context, userID string) ([]*Application, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM core.application a
		LEFT JOIN core.service s ON s.slug = a.licensetype
		WHERE a.userid = $1
		ORDER BY a.createdat DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_application_repo_list_failed: %w", err)
	}
	defer rows.Close()

	return scanApplications(rows, false)
}

/*
ListAll returns every application for the admin review queue, newest first,
with the applicant's name and email joined in.

Parameters:
  - context: context.Context
  - status: Status (empty means no filter)

Returns:
  - []*Application: Hydrated records including applicant identity
  - error: Query failures
*/
func (repository *PostgresRepository) ListAll(context context.Context, status Status) ([]*Application, error) {
	query := `
		SELECT ` + selectColumns + `, u.name, u.email
		FROM core.application a
		LEFT JOIN core.service s ON s.slug = a.licensetype
		JOIN users.account u ON u.id = a.userid
		WHERE ($1 = '' OR a.status = $1)
		ORDER BY a.createdat DESC`

	rows, err := repository.pool.Query(context, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("postgres_application_repo_list_all_failed: %w", err)
	}
	defer rows.Close()

	return scanApplications(rows, true)
}

// ListEvents returns an application's timeline in chronological order.
func (repository *PostgresRepository) ListEvents(context context.Context, applicationID string) ([]*Event, error) {
	const query = `
		SELECT id, applicationid, status, note, createdat
		FROM core.application_event
		WHERE applicationid = $1
		ORDER BY createdat ASC`

	rows, err := repository.pool.Query(context, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("postgres_application_repo_events_failed: %w", err)
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		event := &Event{}
		err := rows.Scan(&event.ID, &event.ApplicationID, &event.Status, &event.Note, &event.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("postgres_application_repo_event_scan_failed: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_application_repo_event_rows_failed: %w", err)
	}

	return events, nil
}

/*
UpdateStatus persists a status transition together with its timeline event.

Description: Both writes run in one transaction. The WHERE clause re-checks
that the stored status is non-terminal, so two concurrent reviewers cannot
both close the same application.

Parameters:
  - context: context.Context
  - app: *Application (carries the new status and remarks)
  - event: *Event (timeline entry describing the transition)

Returns:
  - error: apperr.Conflict when the application was already decided
*/
func (repository *PostgresRepository) UpdateStatus(context context.Context, app *Application, event *Event) error {
	now := time.Now()
	app.UpdatedAt = now
	event.ApplicationID = app.ID
	event.CreatedAt = now

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_application_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	const updateApplication = `
		UPDATE core.application
		SET status = $2, remarks = $3, updatedat = $4
		WHERE id = $1 AND status IN ('pending', 'processing')`

	tag, err := transaction.Exec(context, updateApplication,
		app.ID,
		app.Status,
		app.Remarks,
		app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_application_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("Application has already been decided")
	}

	if err := insertEvent(context, transaction, event); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_application_repo_commit_failed: %w", err)
	}

	return nil
}

// Stats aggregates the admin dashboard counters in a single round trip.
func (repository *PostgresRepository) Stats(context context.Context) (*Stats, error) {
	const query = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'processing'),
			COUNT(*) FILTER (WHERE status = 'approved' AND updatedat >= date_trunc('day', now())),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM core.application`

	stats := &Stats{}
	err := repository.pool.QueryRow(context, query).Scan(
		&stats.TotalApplications,
		&stats.PendingReview,
		&stats.ProcessingApplications,
		&stats.ApprovedToday,
		&stats.RejectedApplications,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_application_repo_stats_failed: %w", err)
	}

	return stats, nil
}

// scanOne runs a single-row application query and hydrates the entity.
func (repository *PostgresRepository) scanOne(context context.Context, query, argument string) (*Application, error) {
	app := &Application{}
	err := repository.pool.QueryRow(context, query, argument).Scan(
		&app.ID,
		&app.UserID,
		&app.LicenseType,
		&app.ServiceTitle,
		&app.Reference,
		&app.Status,
		&app.Remarks,
		&app.CreatedAt,
		&app.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Application")
		}
		return nil, fmt.Errorf("postgres_application_repo_query_failed: %w", err)
	}

	return app, nil
}

// scanApplications drains a multi-row result set, optionally including the
// joined applicant columns.
func scanApplications(rows pgx.Rows, withApplicant bool) ([]*Application, error) {
	applications := []*Application{}
	for rows.Next() {
		app := &Application{}
		targets := []any{
			&app.ID,
			&app.UserID,
			&app.LicenseType,
			&app.ServiceTitle,
			&app.Reference,
			&app.Status,
			&app.Remarks,
			&app.CreatedAt,
			&app.UpdatedAt,
		}
		if withApplicant {
			targets = append(targets, &app.ApplicantName, &app.ApplicantEmail)
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("postgres_application_repo_scan_failed: %w", err)
		}
		applications = append(applications, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_application_repo_rows_failed: %w", err)
	}

	return applications, nil
}

// insertEvent appends one timeline row inside an open transaction.
func insertEvent(context context.Context, transaction pgx.Tx, event *Event) error {
	const query = `
		INSERT INTO core.application_event (id, applicationid, status, note, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := transaction.Exec(context, query,
		event.ID,
		event.ApplicationID,
		event.Status,
		event.Note,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_application_repo_event_insert_failed: %w", err)
	}

	return nil
}
