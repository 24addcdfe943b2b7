package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/cinescribe/cinescribe/internal/client/cli"
	"github.com/cinescribe/cinescribe/internal/client/config"
)

func main() {
	// Optional local overrides; absence is not an error.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
