package db

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobmatch/internal/listcodec"
)

// User represents an account that owns a profile and applications
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile represents the candidate profile, one per user
type Profile struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Skills           TextList  `json:"skills"`
	ExperienceYears  int       `json:"experience_years"`
	CurrentTitle     string    `json:"current_title,omitempty"`
	CurrentCompany   string    `json:"current_company,omitempty"`
	Education        TextList  `json:"education"`
	Certifications   TextList  `json:"certifications"`
	ResumeText       string    `json:"resume_text,omitempty"`
	Summary          string    `json:"summary,omitempty"`
	DesiredTitles    TextList  `json:"desired_titles"`
	DesiredLocations TextList  `json:"desired_locations"`
	SalaryFloor      *float64  `json:"salary_floor,omitempty"`
	RemotePreference string    `json:"remote_preference"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// JobPosting represents a deduplicated scraped posting. Immutable once stored
// except for re-scoring fields.
type JobPosting struct {
	ID             uuid.UUID  `json:"id"`
	Source         string     `json:"source"`
	ExternalID     string     `json:"external_id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location,omitempty"`
	Description    string     `json:"description,omitempty"`
	RequiredSkills TextList   `json:"required_skills"`
	ExperienceMin  *int       `json:"experience_min,omitempty"`
	SalaryMin      *float64   `json:"salary_min,omitempty"`
	SalaryMax      *float64   `json:"salary_max,omitempty"`
	URL            string     `json:"url"`
	PostedAt       *time.Time `json:"posted_at,omitempty"`
	ScrapedAt      time.Time  `json:"scraped_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Application links one user to one job posting
type Application struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	JobID       uuid.UUID  `json:"job_id"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CoverLetter *string    `json:"cover_letter,omitempty"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MatchScore is a cached score for a (job, user) pair, tagged with the
// profile version it was computed against so staleness is detectable.
type MatchScore struct {
	JobID          uuid.UUID `json:"job_id"`
	UserID         uuid.UUID `json:"user_id"`
	Score          int       `json:"score"`
	ProfileVersion time.Time `json:"profile_version"`
	ComputedAt     time.Time `json:"computed_at"`
}

// StatsSummary holds per-status application counts for one user
type StatsSummary struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Applied      int `json:"applied"`
	Interviewing int `json:"interviewing"`
	Rejected     int `json:"rejected"`
	Accepted     int `json:"accepted"`
	Other        int `json:"other"`
}

// TextList is an ordered list of strings stored as a strict JSONB array.
// Reads tolerate the legacy loosely-quoted encoding via listcodec.
type TextList []string

// Scan implements the Scanner interface for TextList
func (l *TextList) Scan(src interface{}) error {
	if src == nil {
		*l = TextList{}
		return nil
	}
	var raw string
	switch v := src.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return errors.New("failed to scan TextList: unsupported source type")
	}
	items, err := listcodec.Decode(raw)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// Value implements the Valuer interface for TextList
func (l TextList) Value() (driver.Value, error) {
	return listcodec.Encode(l)
}
