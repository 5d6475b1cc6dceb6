package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"promo_store_server/api"
	"promo_store_server/config"
	"promo_store_server/database"
	"promo_store_server/services"
	"promo_store_server/structs"
	"syscall"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 20 * time.Second

var logger *gecho.Logger
var cfg *structs.Config

// init function to load environment variables and initialize logger and database
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if err := config.Validate(cfg); err != nil {
		logger.Fatal("Invalid configuration", gecho.Field("error", err))
	}

	if err := database.Initialize(); err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := database.GetInstance()
	defer func() {
		if err := database.CloseInstance(); err != nil {
			logger.Error("Failed to close database", gecho.Field("error", err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to migrate database", gecho.Field("error", err))
		}
	}

	var redisClient *redis.Client
	if cfg.Session.Store == services.SessionStoreRedis || cfg.RateLimit.Enabled {
		redisClient = services.NewRedisClient(cfg.Cache)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to redis", gecho.Field("error", err), gecho.Field("address", cfg.Cache.Address))
		}
	}

	svc := services.NewServiceManager(logger, cfg, db, redisClient)
	if svc.CacheService != nil {
		defer svc.CacheService.Close()
	}

	if err := svc.AuthService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("Failed to provision admin account", gecho.Field("error", err))
	}

	if cfg.Server.SeedData {
		if err := svc.CategoryService.SeedCatalog(ctx); err != nil {
			logger.Fatal("Failed to seed catalog", gecho.Field("error", err))
		}
	}

	server := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        api.App(cfg, svc),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Failed to start server", gecho.Field("error", err))
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", gecho.Field("error", err))
	}

	// Let pending confirmation emails go out before the database closes.
	svc.OrderService.Wait()
	logger.Info("Server stopped")
}
