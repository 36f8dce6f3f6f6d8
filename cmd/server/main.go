package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/rpattn/equipo/internal/config"
	"github.com/rpattn/equipo/internal/dashboard"
	"github.com/rpattn/equipo/internal/db"
	"github.com/rpattn/equipo/internal/export"
	"github.com/rpattn/equipo/internal/ingestion"
	"github.com/rpattn/equipo/internal/inventory"
	"github.com/rpattn/equipo/internal/middleware"
	"github.com/rpattn/equipo/internal/repository"
	"github.com/rpattn/equipo/internal/seed"
)

func main() {
	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Run migrations before opening the pool
	if err := db.RunMigrations(cfg.DB, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Setup database connection
	conn, err := db.NewConnection(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	// Create repositories
	equipmentRepo := repository.NewEquipmentRepository(conn.Pool)
	historyRepo := repository.NewHistoryRepository(conn.Pool)
	referenceRepo := repository.NewReferenceRepository(conn.Pool)
	dashboardRepo := repository.NewDashboardRepository(conn.Pool)

	// Seed the fixed vocabularies (and demo rows when configured)
	if err := seed.Run(ctx, referenceRepo, equipmentRepo, cfg.SeedDemoData); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Create services
	inventoryService := inventory.NewService(equipmentRepo, historyRepo, referenceRepo)
	dashboardService := dashboard.NewService(dashboardRepo, referenceRepo)
	ingestionService := ingestion.NewService(inventoryService)
	exportService := export.NewService(equipmentRepo)

	// Setup CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	mux := http.NewServeMux()
	handle := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, corsHandler.Handler(middleware.LoggingMiddleware(handler)))
	}

	equipmentHandler := inventory.NewHTTPHandler(inventoryService)
	handle("/api/equipment", equipmentHandler)
	handle("/api/equipment/", equipmentHandler)
	handle("/api/dashboard/", dashboard.NewHTTPHandler(dashboardService))
	handle("/api/import", ingestion.NewHTTPHandler(ingestionService))
	handle("/api/export/equipment", export.NewHTTPHandler(exportService))
	handle("/api/health", healthHandler())

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting equipment API server on %s", cfg.ServerAddr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func healthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
