package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"active-rooms-backend/config"
	"active-rooms-backend/internal/api"
	"active-rooms-backend/internal/db"
	"active-rooms-backend/internal/imagestore"
	"active-rooms-backend/internal/model"
	"active-rooms-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "rooms-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create the store layer instance
	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Seed the bootstrap admin account when configured
	if cfg.Auth.BootstrapAdminUsername != "" && cfg.Auth.BootstrapAdminPassword != "" {
		err := appStore.EnsureUser(context.Background(), &model.User{
			Username: cfg.Auth.BootstrapAdminUsername,
			Password: cfg.Auth.BootstrapAdminPassword,
			Role:     model.RoleAdmin,
		})
		if err != nil {
			logger.Fatalf("failed to seed bootstrap admin: %v", err)
		}
		logger.Printf("bootstrap admin %s ensured", cfg.Auth.BootstrapAdminUsername)
	}

	// Initialize map image storage
	images, err := imagestore.New(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		logger.Fatalf("failed to initialize image storage: %v", err)
	}
	logger.Printf("map images stored under %s", cfg.Uploads.Dir)

	// Initialize router
	router := api.NewRouter(appStore, images, cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
