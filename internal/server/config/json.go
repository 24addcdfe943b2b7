package config

import (
	"encoding/json"
	"os"

	"github.com/cinescribe/cinescribe/internal/flagx"
)

// JsonConfig mirrors Config for file unmarshalling.
type JsonConfig struct {
	EndpointAddr string `json:"endpoint_addr"`
	DatabaseDSN  string `json:"database_dsn"`
}

// parseJson overlays values from the JSON file named by the -c/-config
// flags, if any. A missing flag means no file is loaded; an unreadable or
// malformed file panics, since running with half-applied config is worse
// than not starting.
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

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
}
