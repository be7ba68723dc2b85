package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumiai/lumi-router/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, "production", cfg.Mode)
		require.False(t, cfg.Development())
		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 20, cfg.RateLimit.Capacity)
		require.Equal(t, 60, cfg.RateLimit.WindowSeconds)
		require.Equal(t, 30, cfg.Router.UpstreamTimeout)
		require.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
		require.Equal(t, "https://api.groq.com/openai/v1", cfg.Groq.BaseURL)
		require.Empty(t, cfg.Groq.APIKey)
		require.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouter.BaseURL)
		require.Equal(t, "LUMI AI", cfg.OpenRouter.AppName)
		require.Equal(t, "https://api.openai.com/v1", cfg.UserKey.BaseURL)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("APP_ENV", "development")
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("RATE_LIMIT_CAPACITY", "5")
		t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "10")
		t.Setenv("OLLAMA_URL", "http://ollama.internal:11434")
		t.Setenv("GROQ_API_KEY", "gsk-test-key")
		t.Setenv("OPENROUTER_API_KEY", "or-test-key")
		t.Setenv("UPSTREAM_TIMEOUT", "15")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.True(t, cfg.Development())
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, 5, cfg.RateLimit.Capacity)
		require.Equal(t, 10, cfg.RateLimit.WindowSeconds)
		require.Equal(t, "http://ollama.internal:11434", cfg.Ollama.BaseURL)
		require.Equal(t, "gsk-test-key", cfg.Groq.APIKey)
		require.Equal(t, "or-test-key", cfg.OpenRouter.APIKey)
		require.Equal(t, 15, cfg.Router.UpstreamTimeout)
	})
}
