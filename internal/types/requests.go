package types

import (
	"time"

	"github.com/google/uuid"
)

// ScrapeRequest asks the server to fetch and ingest postings from job boards.
type ScrapeRequest struct {
	// Sources lists source names; empty means all configured sources
	Sources  []string `json:"sources,omitempty"`
	Query    string   `json:"query" validate:"required,min=1"`
	Location string   `json:"location,omitempty"`
	Limit    int      `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// ScrapeResponse reports per-source ingestion counts.
type ScrapeResponse struct {
	Sources map[string]SourceResult `json:"sources"`
	Found   int                     `json:"jobs_found"`
	Saved   int                     `json:"jobs_saved"`
}

// SourceResult holds the counts for one source in a scrape run.
type SourceResult struct {
	Found int `json:"jobs_found"`
	Saved int `json:"jobs_saved"`
}

// UpsertProfileRequest creates or replaces the caller's candidate profile.
type UpsertProfileRequest struct {
	Skills           []string `json:"skills"`
	ExperienceYears  int      `json:"experience_years" validate:"min=0,max=60"`
	CurrentTitle     string   `json:"current_title,omitempty"`
	CurrentCompany   string   `json:"current_company,omitempty"`
	Education        []string `json:"education,omitempty"`
	Certifications   []string `json:"certifications,omitempty"`
	ResumeText       string   `json:"resume_text,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	DesiredTitles    []string `json:"desired_titles,omitempty"`
	DesiredLocations []string `json:"desired_locations,omitempty"`
	SalaryFloor      *float64 `json:"salary_floor,omitempty" validate:"omitempty,min=0"`
	RemotePreference string   `json:"remote_preference,omitempty" validate:"omitempty,oneof=remote hybrid onsite any"`
}

// RemotePreferenceOrDefault returns the stated preference, or "any" when the
// field was omitted.
func (r *UpsertProfileRequest) RemotePreferenceOrDefault() string {
	if r.RemotePreference == "" {
		return "any"
	}
	return r.RemotePreference
}

// CreateApplicationRequest tracks a new application against a stored posting.
type CreateApplicationRequest struct {
	JobID uuid.UUID `json:"job_id" validate:"required"`
	Notes string    `json:"notes,omitempty"`
}

// UpdateApplicationRequest moves an application to a new status.
type UpdateApplicationRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes,omitempty"`
}

// CoverLetterRequest asks for a generated cover letter for one application.
type CoverLetterRequest struct {
	Tone string `json:"tone,omitempty" validate:"omitempty,oneof=professional casual enthusiastic"`
}

// MatchResponse returns the match score for a (job, user) pair.
type MatchResponse struct {
	JobID      uuid.UUID `json:"job_id"`
	UserID     uuid.UUID `json:"user_id"`
	Score      int       `json:"score"`
	Cached     bool      `json:"cached"`
	ComputedAt time.Time `json:"computed_at"`
}
