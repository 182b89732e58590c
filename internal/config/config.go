// Package config provides environment and file based configuration for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/jonathan/jobmatch/internal/ingest"
)

// Config holds the process-wide settings read from the environment.
type Config struct {
	// DatabaseURL is the PostgreSQL connection URL (required)
	DatabaseURL string
	// Port is the HTTP listen port
	Port int
	// GeminiAPIKey enables cover letter generation; empty disables it
	GeminiAPIKey string
	// LifecyclePolicy selects the status transition policy by name
	LifecyclePolicy string
	// BoardsFile points to an optional JSON file of HTML board definitions
	BoardsFile string
}

// Load reads configuration from environment variables.
// DATABASE_URL is required; everything else has a default or is optional.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Port:            8080,
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		LifecyclePolicy: os.Getenv("LIFECYCLE_POLICY"),
		BoardsFile:      os.Getenv("BOARDS_FILE"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *Config) normalize() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// LoadBoards reads HTML board definitions from the configured JSON file.
// An unset BoardsFile yields no boards, not an error.
func (c *Config) LoadBoards() ([]ingest.BoardConfig, error) {
	if c.BoardsFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.BoardsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read boards file %s: %w", c.BoardsFile, err)
	}

	var boards []ingest.BoardConfig
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, fmt.Errorf("failed to parse boards JSON: %w", err)
	}

	for i := range boards {
		if err := boards[i].Validate(); err != nil {
			return nil, err
		}
	}

	return boards, nil
}
