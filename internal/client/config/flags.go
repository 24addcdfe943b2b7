package config

import (
	"flag"
	"os"

	"github.com/cinescribe/cinescribe/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   base URL of the store server
//	-k string   TMDb API key
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-k"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpoint, "s", config.ServerEndpoint, "store server base URL")
	fs.StringVar(&config.TMDbAPIKey, "k", config.TMDbAPIKey, "TMDb API key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
