// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"moodflix/cmd"
	"moodflix/internal/data/repository"
	"moodflix/internal/tmdb"
	"moodflix/internal/wire"
	"moodflix/pkg/cache"
	"moodflix/pkg/database"
	"moodflix/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("store", config.Store.Driver),
		zap.Bool("auth_required", config.Auth.Required),
	)

	ctx := context.Background()

	// Open the favorites/history/user store
	repos, closeStore, err := openStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeStore()

	// Catalog response cache
	responseCache, closeCache := openCache(ctx, config, logger)
	defer closeCache()

	if config.TMDB.APIKey == "" {
		logger.Warn("TMDB_API_KEY is not set, catalog requests will fail")
	}
	catalog := tmdb.NewClient(config.TMDB, responseCache, config.Cache.TTL, logger)

	tokens, err := utils.NewTokenManager(config.Auth)
	if err != nil {
		logger.Fatal("Failed to init session tokens", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, catalog, tokens, config, logger)

	// Start server
	if err := cmd.APIServer(app.Router, config.App.Port, config.HTTP, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}

// openStore picks the backend named by STORE_DRIVER.
func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	switch config.Store.Driver {
	case utils.StorePostgres:
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connected successfully")

		if config.Database.AutoMigrate {
			if err := database.Migrate(config.Database, logger); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		return repository.NewRepository(db, logger), db.Close, nil

	case utils.StoreBadger:
		db, err := database.OpenBadger(config.Store.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Badger store opened", zap.String("path", config.Store.BadgerPath))

		closeFn := func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close badger", zap.Error(err))
			}
		}
		return repository.NewBadgerRepository(db, logger), closeFn, nil

	case utils.StoreMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		return repository.NewMemoryRepository(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", config.Store.Driver)
}

// openCache uses Redis when configured and reachable, otherwise an
// in-process cache.
func openCache(ctx context.Context, config *utils.Config, logger *zap.Logger) (cache.Cache, func()) {
	if config.Cache.RedisAddr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		client, err := cache.NewRedisClient(pingCtx, config.Cache.RedisAddr, config.Cache.RedisPassword, config.Cache.RedisDB)
		if err == nil {
			logger.Info("Redis cache connected", zap.String("addr", config.Cache.RedisAddr))
			return cache.NewRedis(client, "moodflix:"), func() { client.Close() }
		}
		logger.Warn("Redis unavailable, falling back to in-process cache", zap.Error(err))
	}

	mem := cache.NewMemory(config.Cache.TTL, config.Cache.MaxBytes)
	sweepCtx, stop := context.WithCancel(ctx)
	go mem.Run(sweepCtx, time.Minute)
	logger.Info("In-process cache enabled", zap.Int64("max_bytes", config.Cache.MaxBytes))
	return mem, stop
}
