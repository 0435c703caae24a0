package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insights_api/internal/config"
	"insights_api/internal/insights"
	"insights_api/internal/logger"
	"insights_api/internal/metrics"
	"insights_api/internal/repository"
	"insights_api/internal/server"
)

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		logger.Init("")
		logger.Log.Fatalf("Config load error: %v", err)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Log.Info("Application stopped")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Источник данных: файл или PostgreSQL
	repo, err := repository.Open(ctx, cfg.DataSource)
	if err != nil {
		logger.Log.Fatalf("Data source error: %v", err)
	}
	defer repo.Close()

	svc := insights.NewService(repo, cfg.StrictNumeric)
	srv := server.NewServer(svc, repo, metrics.New())

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Log.Infof("Starting HTTP server on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	ctxShutdown, cancelShutdown := context.WithTimeout(ctx, 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Log.Fatalf("Forced shutdown: %v", err)
	}
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.json"
}
