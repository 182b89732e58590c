package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobPostingInput holds the fields needed to store a new posting
type JobPostingInput struct {
	Source         string
	ExternalID     string
	Title          string
	Company        string
	Location       string
	Description    string
	RequiredSkills []string
	ExperienceMin  *int
	SalaryMin      *float64
	SalaryMax      *float64
	URL            string
	PostedAt       *time.Time
}

const postingColumns = `id, source, external_id, title, company, location, description,
	        required_skills, experience_min, salary_min, salary_max, url,
	        posted_at, scraped_at, created_at`

func scanPosting(row pgx.Row) (*JobPosting, error) {
	var p JobPosting
	err := row.Scan(&p.ID, &p.Source, &p.ExternalID, &p.Title, &p.Company, &p.Location,
		&p.Description, &p.RequiredSkills, &p.ExperienceMin, &p.SalaryMin, &p.SalaryMax,
		&p.URL, &p.PostedAt, &p.ScrapedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// InsertPosting stores a posting if its identity key is unseen. Returns true
// when a row was inserted and false when the (source, external_id) pair
// already exists. The unique index makes concurrent inserts of the same
// identity resolve to exactly one stored row.
func (db *DB) InsertPosting(ctx context.Context, input *JobPostingInput) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`INSERT INTO job_postings (source, external_id, title, company, location, description,
		                           required_skills, experience_min, salary_min, salary_max,
		                           url, posted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (source, external_id) DO NOTHING`,
		input.Source, input.ExternalID, input.Title, input.Company, input.Location,
		input.Description, TextList(input.RequiredSkills), input.ExperienceMin,
		input.SalaryMin, input.SalaryMax, input.URL, input.PostedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert job posting: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// GetPostingByID retrieves a posting by its ID
func (db *DB) GetPostingByID(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+postingColumns+` FROM job_postings WHERE id = $1`,
		id,
	)

	p, err := scanPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return p, nil
}

// ListPostingsOptions contains filters for listing job postings
type ListPostingsOptions struct {
	Source   string    // Filter by source name
	Company  string    // Case-insensitive substring match on company
	MinScore *int      // Keep only postings scored at or above this for UserID
	UserID   uuid.UUID // Owner of the cached match scores consulted by MinScore
	Limit    int       // Pagination limit
	Offset   int       // Pagination offset
}

// filter builds the JOIN and WHERE clauses for the options. The minimum score
// filter consults the caller's cached match scores, so postings the caller
// never scored are excluded from a MinScore listing.
func (o ListPostingsOptions) filter() (joinClause, whereClause string, args []interface{}) {
	var conditions []string
	argIndex := 1

	if o.Source != "" {
		conditions = append(conditions, fmt.Sprintf("source = $%d", argIndex))
		args = append(args, o.Source)
		argIndex++
	}
	if o.Company != "" {
		conditions = append(conditions, fmt.Sprintf("company ILIKE $%d", argIndex))
		args = append(args, "%"+o.Company+"%")
		argIndex++
	}
	if o.MinScore != nil {
		joinClause = "JOIN match_scores ms ON ms.job_id = job_postings.id"
		conditions = append(conditions, fmt.Sprintf("ms.user_id = $%d", argIndex))
		args = append(args, o.UserID)
		argIndex++
		conditions = append(conditions, fmt.Sprintf("ms.score >= $%d", argIndex))
		args = append(args, *o.MinScore)
		argIndex++
	}

	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return joinClause, whereClause, args
}

// ListPostings lists job postings with optional filters and pagination
func (db *DB) ListPostings(ctx context.Context, opts ListPostingsOptions) ([]JobPosting, int, error) {
	joinClause, whereClause, args := opts.filter()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM job_postings %s %s", joinClause, whereClause)
	var total int
	if err := db.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count job postings: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT `+postingColumns+` FROM job_postings %s %s
		 ORDER BY scraped_at DESC
		 LIMIT $%d OFFSET $%d`,
		joinClause, whereClause, len(args)-1, len(args),
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, 0, err
		}
		postings = append(postings, *p)
	}

	return postings, total, nil
}
