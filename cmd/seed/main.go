package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"ideaforge/internal/config"
	"ideaforge/internal/db"
	"ideaforge/internal/observability"
	"ideaforge/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	users := flag.Int("users", defaults.Users, "number of users to create")
	ideas := flag.Int("ideas", defaults.IdeasPerUser, "ideas per user")
	comments := flag.Int("comments", defaults.CommentsPerIdea, "comments per idea")
	ads := flag.Int("ads", defaults.Ads, "ads to purchase with earned credits")
	rngSeed := flag.Int64("seed", defaults.Seed, "random seed")
	flag.Parse()

	cfg := config.Load()
	observability.Setup(cfg.IsProduction())

	if cfg.IsProduction() {
		slog.Error("refusing to seed a production database")
		os.Exit(1)
	}

	if err := db.Init(cfg.DatabaseURL); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	_, err := seed.Run(context.Background(), seed.Options{
		Users:           *users,
		IdeasPerUser:    *ideas,
		CommentsPerIdea: *comments,
		Ads:             *ads,
		Seed:            *rngSeed,
	})
	if err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}
