package ingest

import (
	"context"
	"fmt"
	"time"
)

// DefaultFetchTimeout bounds one source request
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobMatch/1.0)"

// Source fetches raw postings from one external job board
type Source interface {
	// Name identifies the source; it becomes the postings' source field
	Name() string
	// Fetch retrieves postings matching the query. Limit <= 0 means the
	// source default.
	Fetch(ctx context.Context, query, location string, limit int) ([]RawPosting, error)
}

// SourceError indicates a fetch source was unreachable or returned an
// unusable payload
type SourceError struct {
	Source  string
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("source %s: %s", e.Source, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// APISourceNames lists the built-in JSON API sources. Board sources are
// configured separately; these are always available.
var APISourceNames = []string{SourceNameArbeitnow}

// SourceByName resolves a built-in source name
func SourceByName(name string) (Source, error) {
	switch name {
	case SourceNameArbeitnow:
		return NewArbeitnowSource(), nil
	}
	return nil, fmt.Errorf("unsupported source: %q", name)
}
