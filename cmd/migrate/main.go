package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"skillmatch-backend/config"
	"skillmatch-backend/migrations"
	"skillmatch-backend/pkg/database"
	"skillmatch-backend/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	logger.Init()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	applied, err := database.Migrate(ctx, db, migrations.Files)
	if err != nil {
		logger.Log.Error("Migration failed", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Migrations complete", "applied", applied)
}
