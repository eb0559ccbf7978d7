package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/application/services"
	"github.com/xinran093/synthesisAI-V2/infrastructure/acl"
	"github.com/xinran093/synthesisAI-V2/infrastructure/config"
	"github.com/xinran093/synthesisAI-V2/infrastructure/persistence/file"
	"github.com/xinran093/synthesisAI-V2/infrastructure/watch"
	"github.com/xinran093/synthesisAI-V2/interfaces/http/rest"
	apperrors "github.com/xinran093/synthesisAI-V2/pkg/errors"
	"github.com/xinran093/synthesisAI-V2/pkg/observability"
)

func main() {
	// Initialize context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	metrics := observability.NewCollector("synthesisai")

	// File persistence
	eventLog, err := file.NewEventLog(filepath.Join(cfg.Storage.DataDir, cfg.Storage.EventLog), logger)
	if err != nil {
		logger.Fatal("Failed to open event log", zap.Error(err))
	}
	graphStore, err := file.NewGraphStore(filepath.Join(cfg.Storage.DataDir, cfg.Storage.NetworkFile))
	if err != nil {
		logger.Fatal("Failed to open network store", zap.Error(err))
	}

	// Application services
	datasets := services.NewDatasetService(logger, metrics)
	openai := acl.NewOpenAIClient(cfg.OpenAI, logger)

	// Startup dataset: ingest when present, keep serving without one otherwise.
	if _, err := os.Stat(cfg.Dataset.Path); err == nil {
		if _, err := datasets.IngestFile(ctx, cfg.Dataset.Path); err != nil {
			logger.Warn("Failed to ingest startup dataset", zap.String("path", cfg.Dataset.Path), zap.Error(err))
		}
	} else {
		logger.Info("No startup dataset found", zap.String("path", cfg.Dataset.Path))
	}

	var watcher *watch.DatasetWatcher
	if cfg.Dataset.Watch {
		watcher, err = watch.NewDatasetWatcher(cfg.Dataset.Path, func() {
			if _, err := datasets.IngestFile(context.Background(), cfg.Dataset.Path); err != nil {
				if apperrors.IsNotFound(err) {
					// File deleted mid-watch: keep serving the current graph.
					logger.Info("Dataset removed, keeping current graph", zap.String("path", cfg.Dataset.Path))
					return
				}
				logger.Warn("Dataset reload failed", zap.Error(err))
			}
		}, logger)
		if err != nil {
			logger.Warn("Dataset hot reload unavailable", zap.Error(err))
		}
	}

	// Create router
	router := rest.NewRouter(
		datasets,
		eventLog,
		graphStore,
		openai,
		metrics,
		logger,
		cfg.CORS.AllowedOrigins,
		cfg.StaticDir,
	)

	// Setup routes
	handler := router.Setup()

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if watcher != nil {
		watcher.Stop()
	}

	// Clean up resources
	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}
