package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arbeitnowTestSource(url string) *ArbeitnowSource {
	return &ArbeitnowSource{
		baseURL: url,
		client:  &http.Client{Timeout: DefaultFetchTimeout},
	}
}

func TestArbeitnowFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data": [
			{"slug": "backend-dev-1", "title": "Backend Developer", "company_name": "Acme",
			 "location": "Berlin", "description": "Go and PostgreSQL", "url": "https://example.com/1",
			 "tags": ["go", "postgresql"], "created_at": 1700000000},
			{"slug": "designer-1", "title": "Product Designer", "company_name": "Globex",
			 "location": "Remote", "description": "Figma", "url": "https://example.com/2",
			 "tags": ["design"], "created_at": 1700000001}
		]}`)
	}))
	defer srv.Close()

	postings, err := arbeitnowTestSource(srv.URL).Fetch(context.Background(), "backend", "", 10)
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "backend-dev-1", postings[0].ExternalID)
	assert.Equal(t, "Acme", postings[0].Company)
	require.NotNil(t, postings[0].PostedAt)
	assert.Equal(t, int64(1700000000), postings[0].PostedAt.Unix())
}

func TestArbeitnowFetchEmptyQueryMatchesAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data": [
			{"slug": "a", "title": "One", "company_name": "Acme"},
			{"slug": "b", "title": "Two", "company_name": "Globex"}
		]}`)
	}))
	defer srv.Close()

	postings, err := arbeitnowTestSource(srv.URL).Fetch(context.Background(), "", "", 10)
	require.NoError(t, err)
	assert.Len(t, postings, 2)
}

func TestArbeitnowFetchRespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data": [
			{"slug": "a", "title": "One", "company_name": "Acme"},
			{"slug": "b", "title": "Two", "company_name": "Globex"},
			{"slug": "c", "title": "Three", "company_name": "Initech"}
		]}`)
	}))
	defer srv.Close()

	postings, err := arbeitnowTestSource(srv.URL).Fetch(context.Background(), "", "", 2)
	require.NoError(t, err)
	assert.Len(t, postings, 2)
}

func TestArbeitnowFetchRejectsInvalidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Missing required slug field
		fmt.Fprint(w, `{"data": [{"title": "One", "company_name": "Acme"}]}`)
	}))
	defer srv.Close()

	_, err := arbeitnowTestSource(srv.URL).Fetch(context.Background(), "", "", 10)
	require.Error(t, err)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "arbeitnow", srcErr.Source)
	assert.Contains(t, srcErr.Message, "schema validation")
}

func TestArbeitnowFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := arbeitnowTestSource(srv.URL).Fetch(context.Background(), "", "", 10)
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Contains(t, srcErr.Message, "502")
}

func TestSourceByName(t *testing.T) {
	src, err := SourceByName("arbeitnow")
	require.NoError(t, err)
	assert.Equal(t, "arbeitnow", src.Name())

	_, err = SourceByName("monster")
	assert.Error(t, err)
}

func TestAPISourceNamesAllResolve(t *testing.T) {
	for _, name := range APISourceNames {
		src, err := SourceByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, src.Name())
	}
}

func boardTestPage() string {
	var sb strings.Builder
	sb.WriteString("<html><body><div id='listings'>")
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&sb, `<div class="job-card">
			<h2 class="job-title">Engineer %d</h2>
			<span class="job-company">Company %d</span>
			<span class="job-location">City %d</span>
			<a class="job-link" href="/jobs/%d">details</a>
		</div>`, i, i, i, i)
	}
	sb.WriteString("</div>")
	// Padding keeps the page above the headless-render threshold
	sb.WriteString(strings.Repeat("<!-- filler -->", 40))
	sb.WriteString("</body></html>")
	return sb.String()
}

func testBoardConfig(url string) BoardConfig {
	return BoardConfig{
		Name:             "someboard",
		SearchURL:        url + "/search?q={query}",
		ItemSelector:     "div.job-card",
		TitleSelector:    "h2.job-title",
		CompanySelector:  "span.job-company",
		LocationSelector: "span.job-location",
		LinkSelector:     "a.job-link",
	}
}

func TestBoardSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "golang dev", r.URL.Query().Get("q"))
		fmt.Fprint(w, boardTestPage())
	}))
	defer srv.Close()

	src, err := NewBoardSource(testBoardConfig(srv.URL))
	require.NoError(t, err)

	postings, err := src.Fetch(context.Background(), "golang dev", "", 10)
	require.NoError(t, err)
	require.Len(t, postings, 3)
	assert.Equal(t, "Engineer 1", postings[0].Title)
	assert.Equal(t, "Company 1", postings[0].Company)
	assert.Equal(t, "City 1", postings[0].Location)
	assert.Equal(t, srv.URL+"/jobs/1", postings[0].URL)
	// HTML boards carry no stable id; dedup falls back to content hashing
	assert.Empty(t, postings[0].ExternalID)
}

func TestBoardSourceFetchRespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, boardTestPage())
	}))
	defer srv.Close()

	src, err := NewBoardSource(testBoardConfig(srv.URL))
	require.NoError(t, err)

	postings, err := src.Fetch(context.Background(), "go", "", 2)
	require.NoError(t, err)
	assert.Len(t, postings, 2)
}

func TestBoardConfigValidate(t *testing.T) {
	cfg := BoardConfig{Name: "b", SearchURL: "https://example.com"}
	assert.Error(t, cfg.Validate())

	cfg.ItemSelector = "div"
	cfg.TitleSelector = "h2"
	cfg.CompanySelector = "span"
	assert.NoError(t, cfg.Validate())

	cfg.Name = ""
	assert.Error(t, cfg.Validate())
}

// stubSource serves canned postings or a canned error
type stubSource struct {
	name     string
	postings []RawPosting
	err      error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, _, _ string, _ int) ([]RawPosting, error) {
	return s.postings, s.err
}

func TestFetchAllCollectsPerSource(t *testing.T) {
	sources := []Source{
		&stubSource{name: "one", postings: []RawPosting{{Title: "A", Company: "Acme"}}},
		&stubSource{name: "two", postings: []RawPosting{{Title: "B", Company: "Globex"}, {Title: "C", Company: "Initech"}}},
	}

	results, err := FetchAll(context.Background(), sources, "go", "", 10)
	require.NoError(t, err)
	assert.Len(t, results["one"], 1)
	assert.Len(t, results["two"], 2)
}

func TestFetchAllSkipsFailingSource(t *testing.T) {
	sources := []Source{
		&stubSource{name: "up", postings: []RawPosting{{Title: "A", Company: "Acme"}}},
		&stubSource{name: "down", err: &SourceError{Source: "down", Message: "unreachable"}},
	}

	results, err := FetchAll(context.Background(), sources, "go", "", 10)
	require.NoError(t, err)
	assert.Len(t, results["up"], 1)
	_, present := results["down"]
	assert.False(t, present)
}

func TestFetchAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := []Source{
		&stubSource{name: "down", err: context.Canceled},
	}

	_, err := FetchAll(ctx, sources, "go", "", 10)
	assert.Error(t, err)
}
