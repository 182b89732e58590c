package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BoardConfig describes how to scrape one HTML job board: where its search
// page lives and which CSS selectors locate posting fields.
type BoardConfig struct {
	// Name becomes the postings' source field
	Name string `json:"name"`
	// SearchURL is the search page URL; "{query}" is replaced with the
	// URL-escaped query string
	SearchURL string `json:"search_url"`
	// ItemSelector matches one posting card
	ItemSelector string `json:"item_selector"`
	// Field selectors are evaluated relative to each card
	TitleSelector    string `json:"title_selector"`
	CompanySelector  string `json:"company_selector"`
	LocationSelector string `json:"location_selector"`
	LinkSelector     string `json:"link_selector"`
	// UseBrowser forces headless rendering for boards that only populate
	// listings client-side
	UseBrowser bool `json:"use_browser"`
}

// Validate checks the selectors a scrape cannot work without
func (c *BoardConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("board config: name is required")
	}
	if c.SearchURL == "" {
		return fmt.Errorf("board config %s: search_url is required", c.Name)
	}
	if c.ItemSelector == "" || c.TitleSelector == "" || c.CompanySelector == "" {
		return fmt.Errorf("board config %s: item, title, and company selectors are required", c.Name)
	}
	return nil
}

// BoardSource scrapes a configured HTML job board. Boards without stable
// posting ids rely on the content-hash identity fallback downstream.
type BoardSource struct {
	config BoardConfig
	client *http.Client
}

// NewBoardSource creates a source for one configured board
func NewBoardSource(config BoardConfig) (*BoardSource, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &BoardSource{
		config: config,
		client: &http.Client{Timeout: DefaultFetchTimeout},
	}, nil
}

// Name identifies the source
func (s *BoardSource) Name() string { return s.config.Name }

// Fetch loads the board's search page and extracts posting cards. When the
// page body is too short to hold listings, it falls back to headless
// rendering once before parsing.
func (s *BoardSource) Fetch(ctx context.Context, query, location string, limit int) ([]RawPosting, error) {
	if limit <= 0 {
		limit = 25
	}

	searchURL := strings.ReplaceAll(s.config.SearchURL, "{query}", url.QueryEscape(query))

	html, err := s.fetchHTML(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &SourceError{Source: s.Name(), Message: "failed to parse HTML", Cause: err}
	}

	var postings []RawPosting
	doc.Find(s.config.ItemSelector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		posting := RawPosting{
			Title:    cardText(card, s.config.TitleSelector),
			Company:  cardText(card, s.config.CompanySelector),
			Location: cardText(card, s.config.LocationSelector),
		}
		if s.config.LinkSelector != "" {
			if href, ok := card.Find(s.config.LinkSelector).First().Attr("href"); ok {
				posting.URL = resolveURL(searchURL, href)
			}
		}
		posting.Description = strings.TrimSpace(card.Text())
		postings = append(postings, posting)
		return len(postings) < limit
	})

	return postings, nil
}

func (s *BoardSource) fetchHTML(ctx context.Context, searchURL string) (string, error) {
	if s.config.UseBrowser {
		return s.renderHTML(ctx, searchURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", &SourceError{Source: s.Name(), Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &SourceError{Source: s.Name(), Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &SourceError{Source: s.Name(), Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &SourceError{Source: s.Name(), Message: "failed to read response body", Cause: err}
	}

	html := string(body)
	if ShouldUseBrowser(html) {
		return s.renderHTML(ctx, searchURL)
	}
	return html, nil
}

func (s *BoardSource) renderHTML(ctx context.Context, searchURL string) (string, error) {
	html, err := RenderPage(ctx, searchURL, DefaultFetchTimeout)
	if err != nil {
		return "", &SourceError{Source: s.Name(), Message: "browser rendering failed", Cause: err}
	}
	return html, nil
}

func cardText(card *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(card.Find(selector).First().Text())
}

// resolveURL makes a card link absolute against the search page URL
func resolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
