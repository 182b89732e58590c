package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobmatch")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LIFECYCLE_POLICY", "")
	t.Setenv("BOARDS_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Empty(t, cfg.LifecyclePolicy)
}

func TestLoadCustomPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobmatch")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobmatch")

	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadBoardsUnset(t *testing.T) {
	cfg := &Config{}
	boards, err := cfg.LoadBoards()
	require.NoError(t, err)
	assert.Nil(t, boards)
}

func TestLoadBoardsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.json")
	content := `[{
		"name": "someboard",
		"search_url": "https://jobs.example.com/search?q={query}",
		"item_selector": "div.job-card",
		"title_selector": "h2",
		"company_selector": ".company"
	}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := &Config{BoardsFile: path}
	boards, err := cfg.LoadBoards()
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "someboard", boards[0].Name)
	assert.Equal(t, "div.job-card", boards[0].ItemSelector)
}

func TestLoadBoardsRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.json")
	content := `[{"name": "broken", "search_url": "https://example.com"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := &Config{BoardsFile: path}
	_, err := cfg.LoadBoards()
	assert.Error(t, err)
}

func TestLoadBoardsMissingFile(t *testing.T) {
	cfg := &Config{BoardsFile: "/nonexistent/boards.json"}
	_, err := cfg.LoadBoards()
	assert.Error(t, err)
}
