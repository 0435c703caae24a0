package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"insights_api/internal/config"
	"insights_api/internal/db"
	"insights_api/internal/importer"
	"insights_api/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "path to JSON or YAML config")
	source := flag.String("source", "", "JSON file to import (defaults to data_source.path)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Init("")
		logger.Log.Fatalf("Config load error: %v", err)
	}
	logger.Init(cfg.LogLevel)

	path := *source
	if path == "" {
		path = cfg.DataSource.Path
	}
	if cfg.DataSource.DSN == "" {
		logger.Log.Fatal("DATABASE_URL or data_source.dsn must be set for import")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDB(ctx, cfg.DataSource.DSN)
	if err != nil {
		logger.Log.Fatalf("DB connection error: %v", err)
	}
	defer database.Close()

	if _, err := importer.NewImporter(database, cfg.StrictNumeric).Run(ctx, path); err != nil {
		logger.Log.Errorf("Import failed: %v", err)
		database.Close()
		os.Exit(1)
	}
}
