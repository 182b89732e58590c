package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/jobmatch/internal/match"
)

// RawPosting is one unprocessed posting as delivered by a fetch source
type RawPosting struct {
	ExternalID  string     `json:"external_id,omitempty"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Salary      string     `json:"salary,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
}

// Valid reports whether the posting carries the minimum fields worth
// storing. Malformed postings are dropped, never fatal.
func (r *RawPosting) Valid() bool {
	return strings.TrimSpace(r.Title) != "" && strings.TrimSpace(r.Company) != ""
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeText collapses whitespace and lowercases, producing a stable form
// for content hashing
func normalizeText(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// IdentityKey derives the deduplication key for a posting: the source-native
// id when the source supplies a stable one, else a content hash over the
// fields that identify a posting. The hash is deterministic so re-scrapes of
// the same posting map to the same key.
func IdentityKey(source string, r *RawPosting) string {
	if id := strings.TrimSpace(r.ExternalID); id != "" {
		return id
	}

	h := sha256.New()
	for _, part := range []string{source, r.Title, r.Company, r.Location, normalizeText(r.Description)} {
		h.Write([]byte(normalizeText(part)))
		h.Write([]byte{0})
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}

// requiredSkills prefers the source's structured tags and falls back to
// extracting known skills from the description text
func requiredSkills(r *RawPosting) []string {
	if len(r.Tags) > 0 {
		return match.NormalizeSkills(r.Tags)
	}
	return match.ExtractSkills(r.Description)
}
