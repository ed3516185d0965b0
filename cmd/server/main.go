package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ejoh/storefront-backend/config"
	"github.com/ejoh/storefront-backend/internal/app/controller"
	"github.com/ejoh/storefront-backend/internal/app/service"
	"github.com/ejoh/storefront-backend/internal/events"
	"github.com/ejoh/storefront-backend/internal/kvstore"
	"github.com/ejoh/storefront-backend/internal/middleware"
	"github.com/ejoh/storefront-backend/internal/router"
	"github.com/ejoh/storefront-backend/internal/scheduler"
	"github.com/ejoh/storefront-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Storefront Backend Server", map[string]interface{}{
		"environment":   cfg.Server.Environment,
		"port":          cfg.Server.Port,
		"store_backend": cfg.Store.Backend,
		"log_level":     logLevel,
	})

	// Initialize the key-value store backend
	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize key-value store", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close key-value store", err)
		}
	}()

	// Initialize services and restore persisted state
	catalogService := service.NewCatalogService(cfg.Latency.CatalogLoad)
	cartService := service.NewCartService(store)
	wishlistService := service.NewWishlistService(store)
	reviewService := service.NewReviewService(store)

	verifier, err := service.NewDemoVerifier(&cfg.Auth)
	if err != nil {
		logger.Fatal("Failed to initialize credential verifier", err)
	}
	authService := service.NewAuthService(store, verifier, &cfg.Auth, &cfg.Latency)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := catalogService.Load(ctx); err != nil {
		logger.Fatal("Failed to load product catalog", err)
	}
	for name, load := range map[string]func(context.Context) error{
		"cart":     cartService.Load,
		"wishlist": wishlistService.Load,
		"reviews":  reviewService.Load,
		"session":  authService.Load,
	} {
		if err := load(ctx); err != nil {
			logger.Fatal("Failed to restore persisted state", err, map[string]interface{}{
				"model": name,
			})
		}
	}

	// Start the event hub
	hub := events.NewHub()
	go hub.Run()

	// Initialize controllers
	productController := controller.NewProductController(catalogService, reviewService)
	cartController := controller.NewCartController(cartService, catalogService, hub)
	wishlistController := controller.NewWishlistController(wishlistService, catalogService, hub)
	reviewController := controller.NewReviewController(reviewService, hub)
	authController := controller.NewAuthController(authService, hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret)

	// Start the snapshot scheduler (optional)
	if cfg.Snapshot.Enabled {
		snapshotScheduler := scheduler.NewSnapshotScheduler(store, cfg.Snapshot.CronSpec)
		if err := snapshotScheduler.Start(); err != nil {
			logger.Fatal("Failed to start snapshot scheduler", err)
		}
		defer snapshotScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		productController,
		cartController,
		wishlistController,
		reviewController,
		authController,
		authMiddleware,
		hub,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

func newStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return kvstore.NewMemoryStore(), nil
	case "redis":
		return kvstore.NewRedisStore(&cfg.Redis)
	case "s3":
		return kvstore.NewS3Store(&cfg.S3), nil
	default: // file
		return kvstore.NewFileStore(cfg.Store.FilePath)
	}
}
