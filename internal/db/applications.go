package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, user_id, job_id, status, notes, cover_letter,
	        applied_at, created_at, updated_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.UserID, &a.JobID, &a.Status, &a.Notes, &a.CoverLetter,
		&a.AppliedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication creates a pending application for a (user, job) pair.
// The unique constraint enforces at-most-one application per pair: two
// concurrent creates yield one row and one ErrDuplicate.
func (db *DB) CreateApplication(ctx context.Context, userID, jobID uuid.UUID, notes string) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO applications (user_id, job_id, status, notes)
		 VALUES ($1, $2, 'pending', $3)
		 RETURNING `+applicationColumns,
		userID, jobID, notes,
	)

	a, err := scanApplication(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("application for user %s and job %s: %w", userID, jobID, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return a, nil
}

// GetApplication retrieves an application by ID
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`,
		id,
	)

	a, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// ListApplicationsOptions contains filters for listing applications
type ListApplicationsOptions struct {
	Status string
	Limit  int
	Offset int
}

// ListApplicationsByUser lists a user's applications, newest first
func (db *DB) ListApplicationsByUser(ctx context.Context, userID uuid.UUID, opts ListApplicationsOptions) ([]Application, error) {
	var conditions []string
	args := []interface{}{userID}
	argIndex := 2

	conditions = append(conditions, "user_id = $1")
	if opts.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, opts.Status)
		argIndex++
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(
		`SELECT `+applicationColumns+` FROM applications
		 WHERE %s
		 ORDER BY created_at DESC
		 LIMIT $%d OFFSET $%d`,
		strings.Join(conditions, " AND "), argIndex, argIndex+1,
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, nil
}

// UpdateApplicationStatus sets a new status and optionally replaces the notes.
// The first transition away from pending stamps applied_at; the COALESCE
// keeps an already-set applied_at untouched forever after.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string, notes *string) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE applications
		 SET status = $2,
		     notes = COALESCE($3, notes),
		     applied_at = COALESCE(applied_at, CASE WHEN $2 <> 'pending' THEN NOW() END),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+applicationColumns,
		id, status, notes,
	)

	a, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return a, nil
}

// SetCoverLetter stores a generated cover letter on an application. The single
// UPDATE replaces any previous letter atomically; callers run it only after
// generation fully succeeded.
func (db *DB) SetCoverLetter(ctx context.Context, id uuid.UUID, letter string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET cover_letter = $2, updated_at = NOW() WHERE id = $1`,
		id, letter,
	)
	if err != nil {
		return fmt.Errorf("failed to store cover letter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// DeleteApplication removes an application. The referenced posting is kept.
func (db *DB) DeleteApplication(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// GetStats counts a user's applications grouped by status. Statuses outside
// the known five land in the Other bucket so the total always matches the
// row count.
func (db *DB) GetStats(ctx context.Context, userID uuid.UUID) (*StatsSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM applications WHERE user_id = $1 GROUP BY status`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	defer rows.Close()

	var stats StatsSummary
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats.Total += count
		switch status {
		case "pending":
			stats.Pending = count
		case "applied":
			stats.Applied = count
		case "interviewing":
			stats.Interviewing = count
		case "rejected":
			stats.Rejected = count
		case "accepted":
			stats.Accepted = count
		default:
			stats.Other += count
		}
	}
	return &stats, nil
}
