package proposer

import (
	"os"
	"strconv"
)

// Config holds all configuration for the AI proposer subsystem.
type Config struct {
	Enabled     bool
	LogCalls    bool
	Endpoint    string
	Model       string
	TimeoutMs   int
	MaxRetries  int
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns a Config with sensible defaults.
// The proposer is disabled by default.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		LogCalls:    false,
		Endpoint:    "http://localhost:11434",
		Model:       "llama3.2",
		TimeoutMs:   60000,
		MaxRetries:  1,
		Temperature: 0.2,
		MaxTokens:   4096,
	}
}

// LoadConfig reads proposer configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PIPLAN_AI_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PIPLAN_AI_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PIPLAN_AI_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PIPLAN_AI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PIPLAN_AI_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PIPLAN_AI_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("PIPLAN_AI_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("PIPLAN_AI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}

	return cfg
}
