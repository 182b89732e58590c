package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertMatchScore caches a computed score together with the profile version
// it was computed against
func (db *DB) UpsertMatchScore(ctx context.Context, jobID, userID uuid.UUID, score int, profileVersion time.Time) (*MatchScore, error) {
	var m MatchScore
	err := db.pool.QueryRow(ctx,
		`INSERT INTO match_scores (job_id, user_id, score, profile_version)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (job_id, user_id) DO UPDATE SET
		     score = $3,
		     profile_version = $4,
		     computed_at = NOW()
		 RETURNING job_id, user_id, score, profile_version, computed_at`,
		jobID, userID, score, profileVersion,
	).Scan(&m.JobID, &m.UserID, &m.Score, &m.ProfileVersion, &m.ComputedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert match score: %w", err)
	}
	return &m, nil
}

// GetMatchScore retrieves a cached score for a (job, user) pair
func (db *DB) GetMatchScore(ctx context.Context, jobID, userID uuid.UUID) (*MatchScore, error) {
	var m MatchScore
	err := db.pool.QueryRow(ctx,
		`SELECT job_id, user_id, score, profile_version, computed_at
		 FROM match_scores WHERE job_id = $1 AND user_id = $2`,
		jobID, userID,
	).Scan(&m.JobID, &m.UserID, &m.Score, &m.ProfileVersion, &m.ComputedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match score: %w", err)
	}
	return &m, nil
}

// IsStale reports whether the cache entry predates the given profile version
func (m *MatchScore) IsStale(profileVersion time.Time) bool {
	return m.ProfileVersion.Before(profileVersion)
}
