package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("ROAMMATE_TEMPERATURE", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.LLM.APIKey, "a missing key must not fail startup")
	assert.Equal(t, "gemini-3-pro-preview", cfg.LLM.ItineraryModel)
	assert.Equal(t, "gemini-3-pro-preview", cfg.LLM.PlacesModel)
	assert.Equal(t, "gemini-3-flash-preview", cfg.LLM.ChatModel)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.LLM.APIKey)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Observability.MetricsEnabled)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("SESSION_STORE", "postgres")
	t.Setenv("SESSION_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_STORE")
	assert.Contains(t, err.Error(), "SESSION_TTL")
}
