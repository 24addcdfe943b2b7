// Package config loads runtime configuration for the CineScribe CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
package config

// Config holds runtime settings for the CineScribe CLI.
//
// Fields:
//   - ServerEndpoint: base URL of the store server, e.g. "http://127.0.0.1:8080".
//   - TMDbAPIKey: API key for the movie metadata lookup; empty disables search.
type Config struct {
	ServerEndpoint string
	TMDbAPIKey     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpoint = "http://127.0.0.1:8080"
	c.TMDbAPIKey = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
