package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// SourceNameArbeitnow identifies the Arbeitnow job board API source
const SourceNameArbeitnow = "arbeitnow"

const arbeitnowBaseURL = "https://www.arbeitnow.com/api/job-board-api"

// arbeitnowDefaultLimit caps postings per fetch when the caller sets none
const arbeitnowDefaultLimit = 50

// arbeitnowSchema validates the API payload before any field is trusted.
// Responses that drift from this shape fail fast as a source error instead
// of producing half-parsed postings.
const arbeitnowSchema = `{
  "type": "object",
  "required": ["data"],
  "properties": {
    "data": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["slug", "title", "company_name"],
        "properties": {
          "slug": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "company_name": {"type": "string"},
          "location": {"type": "string"},
          "description": {"type": "string"},
          "url": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}},
          "created_at": {"type": "integer"}
        }
      }
    }
  }
}`

type arbeitnowJob struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"created_at"`
}

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

// ArbeitnowSource fetches postings from the Arbeitnow job board API. The API
// needs no authentication and no pagination cursor for our volumes.
type ArbeitnowSource struct {
	baseURL string
	client  *http.Client
}

// NewArbeitnowSource creates the source with default transport settings
func NewArbeitnowSource() *ArbeitnowSource {
	return &ArbeitnowSource{
		baseURL: arbeitnowBaseURL,
		client:  &http.Client{Timeout: DefaultFetchTimeout},
	}
}

// Name identifies the source
func (s *ArbeitnowSource) Name() string { return SourceNameArbeitnow }

// Fetch retrieves postings and filters them by the query locally, since the
// API does not support search parameters.
func (s *ArbeitnowSource) Fetch(ctx context.Context, query, location string, limit int) ([]RawPosting, error) {
	if limit <= 0 {
		limit = arbeitnowDefaultLimit
	}

	body, err := s.get(ctx)
	if err != nil {
		return nil, err
	}

	if err := validatePayload(body); err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "payload failed schema validation", Cause: err}
	}

	var resp arbeitnowResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "failed to decode payload", Cause: err}
	}

	var postings []RawPosting
	for _, job := range resp.Data {
		if !matchesQuery(job, query) {
			continue
		}
		posting := RawPosting{
			ExternalID:  job.Slug,
			Title:       job.Title,
			Company:     job.CompanyName,
			Location:    job.Location,
			Description: job.Description,
			URL:         job.URL,
			Tags:        job.Tags,
		}
		if job.CreatedAt > 0 {
			t := time.Unix(job.CreatedAt, 0).UTC()
			posting.PostedAt = &t
		}
		postings = append(postings, posting)
		if len(postings) >= limit {
			break
		}
	}

	return postings, nil
}

func (s *ArbeitnowSource) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceError{Source: s.Name(), Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "failed to read response body", Cause: err}
	}
	return body, nil
}

// validatePayload checks the raw payload against the source schema
func validatePayload(body []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(arbeitnowSchema),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed during load: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	for i, desc := range result.Errors() {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(desc.String())
	}
	return fmt.Errorf("invalid payload: %s", sb.String())
}

// matchesQuery reports whether the job mentions the query in its title,
// tags, or description. An empty query matches everything.
func matchesQuery(job arbeitnowJob, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(job.Title), query) {
		return true
	}
	for _, tag := range job.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(job.Description), query)
}
