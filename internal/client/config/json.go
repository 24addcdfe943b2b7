package config

import (
	"encoding/json"
	"os"

	"github.com/cinescribe/cinescribe/internal/flagx"
)

// JsonConfig mirrors Config for file unmarshalling.
type JsonConfig struct {
	ServerEndpoint string `json:"server_endpoint"`
	TMDbAPIKey     string `json:"tmdb_api_key"`
}

// parseJson overlays values from the JSON file named by the -c/-config
// flags, if any. An unreadable or malformed file panics rather than running
// with half-applied config.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ServerEndpoint != "" {
		config.ServerEndpoint = c.ServerEndpoint
	}
	if c.TMDbAPIKey != "" {
		config.TMDbAPIKey = c.TMDbAPIKey
	}
}
