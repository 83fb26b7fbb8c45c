// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"campaignhub/internal/config"
	"campaignhub/internal/db"
	"campaignhub/internal/interfaces"
	"campaignhub/internal/logger"
	"campaignhub/internal/repository"
	"campaignhub/internal/routes"
)

// @title Campaign API
// @version 1.0
// @description Advertising campaign management: creation, listing, status and counters.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if _, err := logger.Initialize(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open campaign store", slog.Any("error", err))
		os.Exit(1)
	}

	router := routes.SetupRoutes(store, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting",
			slog.String("addr", server.Addr),
			slog.String("store", cfg.Store.Driver),
			slog.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-serverErr:
		slog.Error("server failed", slog.Any("error", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.Any("error", err))
	}
	if err := store.Close(shutdownCtx); err != nil {
		slog.Error("failed to close campaign store", slog.Any("error", err))
	}

	slog.Info("server exited")
}

// openStore connects the configured backend and wraps it with the redis
// cache when one is configured.
func openStore(ctx context.Context, cfg *config.Config) (interfaces.CampaignStore, error) {
	var store interfaces.CampaignStore

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		if cfg.Psql.CreateDatabase {
			if err := db.CreateDatabaseIfNotExists(ctx, cfg.Psql.Addr); err != nil {
				return nil, err
			}
		}
		if cfg.Psql.RunMigrations {
			if err := db.Migrate(cfg.Psql.Addr); err != nil {
				return nil, err
			}
		}
		database, err := db.New(ctx, cfg.Psql)
		if err != nil {
			return nil, err
		}
		store = repository.NewCampaignRepository(database.DB)

	default:
		m, err := db.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		coll := m.Database.Collection(cfg.Mongo.Collection)
		if err := repository.EnsureCampaignIndexes(ctx, coll); err != nil {
			_ = m.Close(context.Background())
			return nil, err
		}
		store = repository.NewMongoCampaignRepository(coll)
	}

	if cfg.Redis.Addr == "" {
		return store, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		_ = store.Close(context.Background())
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Info("campaign cache enabled", slog.String("addr", cfg.Redis.Addr), slog.Duration("ttl", cfg.Redis.TTL))

	return repository.NewCachedCampaignStore(store, client, cfg.Redis.TTL), nil
}
