package config

import "os"

// parseEnv overlays values from environment variables. cmd/server loads a
// local .env file first, so development settings can live there.
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
}
