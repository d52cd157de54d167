package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://landsatlook.usgs.gov/stac-server/search", cfg.Search.URL)
	assert.Equal(t, 100, cfg.Search.Limit)
	assert.Equal(t, []string{"landsat-c2l2-sr", "landsat-c2l2-st"}, cfg.Search.Collections)
	assert.Equal(t, []string{"LANDSAT_8", "LANDSAT_9"}, cfg.Search.Platforms)
	assert.Equal(t, 0.0, cfg.Search.CloudCoverMin)
	assert.Equal(t, 60.0, cfg.Search.CloudCoverMax)
	assert.Equal(t, 0.2, cfg.Search.BBoxOffset)

	assert.Equal(t, "DEMO_KEY", cfg.NASA.APIKey)
	assert.Equal(t, 0.1, cfg.NASA.Dim)
	assert.Equal(t, []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", time.RFC3339Nano}, cfg.NASA.TimeLayouts)

	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, time.Duration(0), cfg.HTTP.Timeout)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STAC_LIMIT", "25")
	t.Setenv("STAC_PLATFORMS", "LANDSAT_9")
	t.Setenv("SMTP_USERNAME", "sender@example.com")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "15")
	t.Setenv("API_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Search.Limit)
	assert.Equal(t, []string{"LANDSAT_9"}, cfg.Search.Platforms)
	assert.Equal(t, "sender@example.com", cfg.SMTP.From, "From falls back to the SMTP username")
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddr())
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList("", ","))
	assert.Equal(t, []string{"a", "b"}, parseList(" a, ,b ", ","))
}
