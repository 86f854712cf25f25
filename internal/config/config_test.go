package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultSiteBaseURL, cfg.SiteBaseURL)
	assert.Equal(t, DefaultFeedBaseURL, cfg.FeedBaseURL)
	assert.Equal(t, 404, cfg.InvalidPathStatus)
	assert.False(t, cfg.SanitizeDescriptions)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.Duration(0), cfg.UpstreamTimeout)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.RateLimit.TrustProxyHeaders)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load("./test_data/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://api.local:8080", cfg.APIBaseURL)
	// not in the file, default kept
	assert.Equal(t, DefaultSiteBaseURL, cfg.SiteBaseURL)
	assert.Equal(t, "https://feed.example.com", cfg.FeedBaseURL)
	assert.Equal(t, 400, cfg.InvalidPathStatus)
	assert.True(t, cfg.SanitizeDescriptions)
	assert.True(t, cfg.SecureHeaders)
	assert.Equal(t, []string{"https://reader.example.com"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 7*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, RateLimit{Enabled: true, RequestsPerMinute: 10, Burst: 30, TrustProxyHeaders: true}, cfg.RateLimit)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "6060")
	t.Setenv("API_BASE_URL", "http://localhost:3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("./test_data/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 6060, cfg.Port)
	assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load("./test_data/nope.yaml")
		assert.Error(t, err)
	})

	t.Run("invalid path status", func(t *testing.T) {
		_, err := Load("./test_data/invalid.yaml")
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("non numeric port", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		_, err := Load("")
		assert.ErrorContains(t, err, "invalid PORT")
	})

	t.Run("relative api url", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "musicthread.app")
		_, err := Load("")
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("zero rate limit burst", func(t *testing.T) {
		cfg := Default()
		cfg.RateLimit.Burst = 0
		assert.ErrorContains(t, cfg.Validate(), "invalid config")
	})

	t.Run("MustLoad panics", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad("./test_data/invalid.yaml") })
	})
}

func TestLoadDotEnv(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("LOG_FORMAT")
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("LOG_FORMAT")
	})

	require.NoError(t, LoadDotEnv("./test_data/test.env", "./test_data/missing.env"))
	assert.Equal(t, "7070", os.Getenv("PORT"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "json", cfg.Log.Format)
}
