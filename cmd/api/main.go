// Package main provides the entry point for the houndtrack portal API
// @title Houndtrack Portal API
// @version 1.0
// @description Administrative and public API for the whippet racing portal.
// @host localhost:8080
// @BasePath /api
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"houndtrack/internal/api/routes"
	"houndtrack/internal/config"
	"houndtrack/internal/database"
	"houndtrack/internal/repository/postgres"
	"houndtrack/internal/validation"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Path to env file")
	flag.Parse()

	// Load environment file
	if err := godotenv.Load(*envFile); err != nil && *envFile == ".env" {
		log.Printf("Warning: %v", err)
	}

	// Load configuration
	cfg := &config.Config{}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize validators
	validation.Initialize()

	// Schedule the audit trail pruning job
	scheduler := cron.New()
	if cfg.Retention.ChangeLogDays > 0 {
		changeLogRepo := postgres.NewChangeLogRepository(db)
		_, err := scheduler.AddFunc(cfg.Retention.Schedule, func() {
			cutoff := time.Now().AddDate(0, 0, -cfg.Retention.ChangeLogDays)
			removed, err := changeLogRepo.DeleteOlderThan(context.Background(), cutoff)
			if err != nil {
				log.Printf("Change log pruning failed: %v", err)
				return
			}
			if removed > 0 {
				log.Printf("Pruned %d change log rows older than %s", removed, cutoff.Format("2006-01-02"))
			}
		})
		if err != nil {
			log.Fatalf("Invalid pruning schedule %q: %v", cfg.Retention.Schedule, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Setup routes
	router := routes.SetupRoutes(cfg, db)

	// Convert port string to int
	port, err := strconv.Atoi(cfg.API.Port)
	if err != nil {
		log.Fatalf("Invalid port number: %v", err)
	}

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
