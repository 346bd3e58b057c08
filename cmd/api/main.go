package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bunkerhq/bunker-engine/internal/config"
	"github.com/bunkerhq/bunker-engine/internal/handlers"
	"github.com/bunkerhq/bunker-engine/internal/logger"
	"github.com/bunkerhq/bunker-engine/internal/middleware"
	"github.com/bunkerhq/bunker-engine/internal/services"
	"github.com/bunkerhq/bunker-engine/internal/sessions"
	"github.com/bunkerhq/bunker-engine/internal/storage"
	"github.com/bunkerhq/bunker-engine/pkg/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logger.Setup(cfg)

	logger.Info("Starting Bunker Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"narrative_provider", cfg.Provider)

	var narrative services.NarrativeService
	switch strings.ToLower(cfg.Provider) {
	case "venice":
		if cfg.VeniceAPIKey == "" {
			logger.Error("Venice API key is required when using venice provider")
			os.Exit(1)
		}
		narrative = services.NewVeniceService(cfg.VeniceAPIKey, cfg.VeniceModel, cfg.VeniceImageModel)
		logger.Info("Using Venice narrative provider", "model", cfg.VeniceModel)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Error("OpenAI API key is required when using openai provider")
			os.Exit(1)
		}
		narrative = services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIImageModel)
		logger.Info("Using OpenAI narrative provider", "model", cfg.OpenAIModel)
	default:
		logger.Error("Invalid narrative provider specified", "provider", cfg.Provider, "supported", []string{"venice", "openai"})
		os.Exit(1)
	}

	// The archive is optional; without Redis, finished games are
	// simply not recorded.
	var archive storage.Archive
	if cfg.RedisURL != "" {
		redisArchive := storage.NewRedisArchive(cfg.RedisURL, logger)
		archiveCtx, archiveCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := redisArchive.WaitForConnection(archiveCtx); err != nil {
			archiveCancel()
			logger.Error("Failed to connect to archive", "error", err)
			os.Exit(1)
		}
		archiveCancel()
		archive = redisArchive
		logger.Info("Archive connection established")
	} else {
		logger.Info("No REDIS_URL configured, finished games will not be archived")
	}

	rules := game.DefaultRules()
	rules.MinPlayers = cfg.MinPlayers
	rules.MaxPlayers = cfg.MaxPlayers
	rules.ExileOnTie = cfg.ExileOnTie
	rules.GenerateImage = cfg.GenerateImages

	manager := sessions.NewManager(narrative, rules, logger)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(archive, manager, logger)
	mux.Handle("/health", healthHandler)

	sessionHandler := handlers.NewSessionHandler(manager, archive, logger)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	resultsHandler := handlers.NewResultsHandler(archive, logger)
	mux.Handle("/v1/results", resultsHandler)
	mux.Handle("/v1/results/", resultsHandler)

	mux.Handle("/metrics", promhttp.Handler())

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second, // image generation is slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	if archive != nil {
		if err := archive.Close(); err != nil {
			logger.Error("Error closing archive connection", "error", err)
		}
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exited")
}
