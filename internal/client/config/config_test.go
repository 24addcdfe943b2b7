package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerEndpoint)
	assert.Empty(t, c.TMDbAPIKey)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_ENDPOINT", "http://store.local:9090")
	t.Setenv("TMDB_API_KEY", "k-123")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "http://store.local:9090", c.ServerEndpoint)
	assert.Equal(t, "k-123", c.TMDbAPIKey)
}

func TestParseJson_PartialOverlayKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tmdb_api_key":"k-file"}`), 0o600))

	oldArgs := os.Args
	os.Args = []string{"client", "-c", path}
	defer func() { os.Args = oldArgs }()

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "k-file", c.TMDbAPIKey)
	assert.Equal(t, "http://127.0.0.1:8080", c.ServerEndpoint, "default must survive")
}
