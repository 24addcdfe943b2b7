// Package config handles configuration for the store server, layering
// defaults, an optional JSON file, environment variables and command-line
// flags (last one wins).
package config

// Config holds runtime settings for the document store server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory
//     repository, which is handy for development and tests.
type Config struct {
	EndpointAddr string
	DatabaseDSN  string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, then environment variables, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
