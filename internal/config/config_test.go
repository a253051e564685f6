package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("GroqDefaults", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "groq_key")
		os.Unsetenv("GENERATION_PROVIDER")

		cfg, err := NewFromEnv()
		require.NoError(t, err)

		assert.Equal(t, "groq", cfg.Provider)
		assert.Equal(t, "groq_key", cfg.GroqAPIKey)
		assert.Equal(t, "llama-3.3-70b-versatile", cfg.GroqModel)
		assert.Equal(t, 7, cfg.MaxPlanDays)
		assert.Equal(t, 3, cfg.MaxGenerationAttempts)
		assert.Equal(t, 30*time.Second, cfg.GenerationTimeout)
	})

	t.Run("MissingGroqKey", func(t *testing.T) {
		t.Setenv("GENERATION_PROVIDER", "groq")
		os.Unsetenv("GROQ_API_KEY")

		_, err := NewFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GROQ_API_KEY")
	})

	t.Run("GeminiProvider", func(t *testing.T) {
		t.Setenv("GENERATION_PROVIDER", "gemini")
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")

		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
	})

	t.Run("MissingGeminiKey", func(t *testing.T) {
		t.Setenv("GENERATION_PROVIDER", "gemini")
		os.Unsetenv("GEMINI_API_KEY")

		_, err := NewFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		t.Setenv("GENERATION_PROVIDER", "openai")

		_, err := NewFromEnv()
		require.Error(t, err)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "groq_key")
		t.Setenv("MAX_PLAN_DAYS", "5")
		t.Setenv("MAX_GENERATION_ATTEMPTS", "2")
		t.Setenv("GENERATION_TIMEOUT", "10s")

		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.MaxPlanDays)
		assert.Equal(t, 2, cfg.MaxGenerationAttempts)
		assert.Equal(t, 10*time.Second, cfg.GenerationTimeout)
	})

	t.Run("BadIntFallsBack", func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "groq_key")
		t.Setenv("MAX_PLAN_DAYS", "lots")

		cfg, err := NewFromEnv()
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.MaxPlanDays)
	})
}
