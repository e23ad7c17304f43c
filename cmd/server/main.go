package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ideaforge/internal/config"
	"ideaforge/internal/db"
	"ideaforge/internal/observability"
	"ideaforge/internal/router"
	"ideaforge/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	observability.Setup(cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Database
	if err := db.Init(cfg.DatabaseURL); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		// rate limiting is optional; run without it rather than refuse to start
		slog.Warn("Redis unavailable, rate limiting disabled", "error", err)
		rdb = nil
	}

	users, err := services.NewUserService(cfg.AvatarCacheSize, cfg.AvatarCacheTTL)
	if err != nil {
		slog.Error("Failed to create avatar cache", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(cfg, rdb, users),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("ideaforge server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	slog.Info("server exited")
}
