package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileInput holds the writable fields of a candidate profile
type ProfileInput struct {
	Skills           []string
	ExperienceYears  int
	CurrentTitle     string
	CurrentCompany   string
	Education        []string
	Certifications   []string
	ResumeText       string
	Summary          string
	DesiredTitles    []string
	DesiredLocations []string
	SalaryFloor      *float64
	RemotePreference string
}

const profileColumns = `id, user_id, skills, experience_years, current_title, current_company,
	        education, certifications, resume_text, summary, desired_titles,
	        desired_locations, salary_floor, remote_preference, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Skills, &p.ExperienceYears, &p.CurrentTitle,
		&p.CurrentCompany, &p.Education, &p.Certifications, &p.ResumeText, &p.Summary,
		&p.DesiredTitles, &p.DesiredLocations, &p.SalaryFloor, &p.RemotePreference,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile creates or replaces the candidate profile for a user.
// The unique constraint on user_id guarantees one profile per user.
func (db *DB) UpsertProfile(ctx context.Context, userID uuid.UUID, input *ProfileInput) (*Profile, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, skills, experience_years, current_title, current_company,
		                       education, certifications, resume_text, summary, desired_titles,
		                       desired_locations, salary_floor, remote_preference)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (user_id) DO UPDATE SET
		     skills = $2,
		     experience_years = $3,
		     current_title = $4,
		     current_company = $5,
		     education = $6,
		     certifications = $7,
		     resume_text = $8,
		     summary = $9,
		     desired_titles = $10,
		     desired_locations = $11,
		     salary_floor = $12,
		     remote_preference = $13,
		     updated_at = NOW()
		 RETURNING `+profileColumns,
		userID, TextList(input.Skills), input.ExperienceYears, input.CurrentTitle,
		input.CurrentCompany, TextList(input.Education), TextList(input.Certifications),
		input.ResumeText, input.Summary, TextList(input.DesiredTitles),
		TextList(input.DesiredLocations), input.SalaryFloor, input.RemotePreference,
	)

	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return p, nil
}

// GetProfileByUserID retrieves the profile owned by a user
func (db *DB) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`,
		userID,
	)

	p, err := scanProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}
