package proposer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled, "proposer is opt-in")
	assert.Equal(t, "http://localhost:11434", cfg.Endpoint)
	assert.Equal(t, "llama3.2", cfg.Model)
	assert.Equal(t, 60000, cfg.TimeoutMs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PIPLAN_AI_ENABLED", "true")
	t.Setenv("PIPLAN_AI_ENDPOINT", "http://gpu-box:11434")
	t.Setenv("PIPLAN_AI_MODEL", "qwen2.5")
	t.Setenv("PIPLAN_AI_TIMEOUT_MS", "15000")
	t.Setenv("PIPLAN_AI_MAX_RETRIES", "3")
	t.Setenv("PIPLAN_AI_TEMPERATURE", "0.7")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "http://gpu-box:11434", cfg.Endpoint)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 0.7, cfg.Temperature)
}

func TestLoadConfig_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("PIPLAN_AI_TIMEOUT_MS", "-5")
	t.Setenv("PIPLAN_AI_MAX_RETRIES", "lots")

	cfg := LoadConfig()
	assert.Equal(t, 60000, cfg.TimeoutMs)
	assert.Equal(t, 1, cfg.MaxRetries)
}
