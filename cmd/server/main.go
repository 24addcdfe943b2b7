package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/cinescribe/cinescribe/internal/server"
	"github.com/cinescribe/cinescribe/internal/server/config"
)

func main() {
	// Optional local overrides; absence is not an error.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
