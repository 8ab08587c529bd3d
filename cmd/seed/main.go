package main

import (
	"context"
	"flag"

	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/database"
	"github.com/pageza/foodgram/backend/internal/logging"
	"github.com/pageza/foodgram/backend/internal/seed"
)

func main() {
	demo := flag.Bool("demo", false, "Also create demo users and ingredients")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if cfg.DBDriver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	res, err := seed.Run(context.Background(), db, seed.Options{Demo: *demo})
	if err != nil {
		logging.Fatal().Err(err).Msg("seeding failed")
	}
	logging.Info().
		Int("tags", res.Tags).
		Int("users", res.Users).
		Int("ingredients", res.Ingredients).
		Msg("seed complete")
	if *demo {
		logging.Info().Str("password", seed.DemoPassword).Msg("demo users share this password")
	}
}
