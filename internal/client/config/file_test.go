package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_JSONOverlaysOnlyPresentKeys(t *testing.T) {
	path := writeTemp(t, "cfg.json", `{
		"backend_url": "https://api.example.com",
		"online_check_interval": "5s",
		"request_timeout": 2000000000,
		"rss_feeds": ["https://a/rss", "https://b/rss"]
	}`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BackendURL)
	assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a/rss", "https://b/rss"}, cfg.RSSFeeds)
	assert.Equal(t, "127.0.0.1:50051", cfg.HealthAddr)
}

func TestLoad_TOML(t *testing.T) {
	path := writeTemp(t, "cfg.toml", `
backend_url = "http://backend:3001"
news_source = "rss"
rss_feeds = ["https://parks.example/rss"]
online_check_interval = "1m"
log_level = "debug"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "http://backend:3001", cfg.BackendURL)
	assert.Equal(t, SourceRSS, cfg.NewsSource)
	assert.Equal(t, []string{"https://parks.example/rss"}, cfg.RSSFeeds)
	assert.Equal(t, time.Minute, cfg.OnlineCheckInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoad_EmptyStringOverrides(t *testing.T) {
	path := writeTemp(t, "cfg.json", `{"news_api_key": ""}`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Empty(t, cfg.NewsAPIKey)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read config")

	_, err = Load(writeTemp(t, "bad.json", `{"backend_url": 1}`))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeTemp(t, "bad.toml", `online_check_interval = "soon"`))
	assert.ErrorContains(t, err, "parse config")
}
