package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shareit/shareit-backend/internal/app"
	"github.com/shareit/shareit-backend/internal/config"
	"github.com/shareit/shareit-backend/internal/db"
	"github.com/shareit/shareit-backend/internal/logging"
	"github.com/shareit/shareit-backend/internal/metrics"
	"github.com/shareit/shareit-backend/internal/user"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.Log, os.Stdout)
	metrics.Register()

	// Connect DB
	var pool *pgxpool.Pool
	if cfg.Storage == config.StoragePostgres {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to db")
		}
		defer pool.Close()

		if cfg.DBMigrate {
			if err := db.Migrate(ctx, pool); err != nil {
				logger.Fatal().Err(err).Msg("failed to migrate db")
			}
			logger.Info().Msg("database schema applied")
		}
	}

	// Optional user cache
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = user.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, user cache disabled")
			_ = redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	container, err := app.NewContainer(app.Deps{
		Config:      cfg,
		Logger:      logger,
		DBPool:      pool,
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build application")
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info().
			Str("addr", cfg.HTTPAddr).
			Str("storage", cfg.Storage).
			Str("auth_mode", cfg.AuthMode).
			Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited gracefully")
}
