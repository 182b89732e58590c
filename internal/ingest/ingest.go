// Package ingest accepts raw postings from fetch sources, normalizes them,
// and inserts only previously-unseen postings.
package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/match"
)

// Store is the persistence surface ingestion writes to
type Store interface {
	// InsertPosting stores a posting unless its identity key exists,
	// returning true when a row was inserted
	InsertPosting(ctx context.Context, input *db.JobPostingInput) (bool, error)
}

// Result reports the outcome of one ingestion run
type Result struct {
	Found int `json:"jobs_found"`
	Saved int `json:"jobs_saved"`
}

// Ingestor normalizes and deduplicates raw postings into storage
type Ingestor struct {
	store Store
}

// New creates an Ingestor backed by the given store
func New(store Store) *Ingestor {
	return &Ingestor{store: store}
}

// Ingest processes one batch of raw postings from a single source. Found is
// the batch length; Saved counts only newly inserted postings. Malformed
// postings are skipped and postings whose identity key already exists are
// silently deduplicated. Only persistence failures are fatal.
func (in *Ingestor) Ingest(ctx context.Context, source string, raw []RawPosting) (Result, error) {
	result := Result{Found: len(raw)}
	source = strings.TrimSpace(strings.ToLower(source))
	if source == "" {
		return result, fmt.Errorf("source name is required")
	}

	for i := range raw {
		r := &raw[i]
		if !r.Valid() {
			log.Printf("[ingest] dropping malformed posting from %s (missing title or company)", source)
			continue
		}

		inserted, err := in.store.InsertPosting(ctx, toInput(source, r))
		if err != nil {
			return result, fmt.Errorf("failed to store posting from %s: %w", source, err)
		}
		if inserted {
			result.Saved++
		}
	}

	return result, nil
}

// toInput normalizes one raw posting into its stored form
func toInput(source string, r *RawPosting) *db.JobPostingInput {
	input := &db.JobPostingInput{
		Source:         source,
		ExternalID:     IdentityKey(source, r),
		Title:          strings.TrimSpace(r.Title),
		Company:        strings.TrimSpace(r.Company),
		Location:       strings.TrimSpace(r.Location),
		Description:    r.Description,
		RequiredSkills: requiredSkills(r),
		URL:            strings.TrimSpace(r.URL),
		PostedAt:       r.PostedAt,
	}

	if years := match.ExtractExperienceYears(r.Description); years > 0 {
		input.ExperienceMin = &years
	}

	salaryText := r.Salary
	if salaryText == "" {
		salaryText = r.Description
	}
	input.SalaryMin, input.SalaryMax = match.ExtractSalaryRange(salaryText)

	return input
}
