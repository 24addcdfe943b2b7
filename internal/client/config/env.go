package config

import "os"

// parseEnv overlays values from environment variables. cmd/client loads a
// local .env file first, so the TMDb key can live there instead of the shell
// history.
func parseEnv(config *Config) {
	if v := os.Getenv("SERVER_ENDPOINT"); v != "" {
		config.ServerEndpoint = v
	}
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		config.TMDbAPIKey = v
	}
}
