package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/savegress/eduguard/internal/api"
	"github.com/savegress/eduguard/internal/audit"
	"github.com/savegress/eduguard/internal/config"
	"github.com/savegress/eduguard/internal/devices"
	"github.com/savegress/eduguard/internal/records"
	"github.com/savegress/eduguard/internal/sanitize"
)

func main() {
	log.Println("Starting EduGuard...")

	cfg := loadConfig()

	// Embedded audit store is optional
	var store *audit.EventStore
	if cfg.Audit.Enabled && cfg.Audit.StoragePath != "" {
		var err error
		store, err = audit.NewEventStore(cfg.Audit.StoragePath)
		if err != nil {
			log.Fatalf("Failed to open audit store: %v", err)
		}
		defer store.Close()
	}

	auditLogger := audit.NewLogger(&cfg.Audit, store)

	engine := sanitize.NewEngine(cfg.Sanitization.PseudonymSalt)
	sanitizer := records.NewSanitizer(engine, cfg.Sanitization.KAnonymityThreshold)

	registry := devices.NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := auditLogger.Start(ctx); err != nil {
		log.Fatalf("Failed to start audit logger: %v", err)
	}

	server := api.NewServer(cfg, registry, sanitizer, auditLogger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("EduGuard API listening on port %d", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down EduGuard...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	auditLogger.Stop()

	log.Println("EduGuard stopped")
}

func loadConfig() *config.Config {
	configPath := os.Getenv("EDUGUARD_CONFIG")
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Printf("Failed to load config from %s: %v, using defaults", configPath, err)
			return config.LoadFromEnv()
		}
		return cfg
	}
	return config.LoadFromEnv()
}
