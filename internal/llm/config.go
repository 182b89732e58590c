package llm

import "os"

// DefaultModel balances cost and quality for letter-length generation
const DefaultModel = "gemini-2.5-flash"

// DefaultTemperature leaves room for stylistic variety between regenerations
const DefaultTemperature float32 = 0.7

// Config holds the model configuration
type Config struct {
	Model       string
	Temperature float32
}

// DefaultConfig returns the default configuration, honoring the
// GEMINI_MODEL environment variable when set.
func DefaultConfig() *Config {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = DefaultModel
	}
	return &Config{
		Model:       model,
		Temperature: DefaultTemperature,
	}
}
