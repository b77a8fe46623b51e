package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/micartera/micartera-backend/internal/adapter/repository/postgres"
	"github.com/micartera/micartera-backend/internal/adapter/rest"
	"github.com/micartera/micartera-backend/internal/config"
	"github.com/micartera/micartera-backend/internal/domain"
	"github.com/micartera/micartera-backend/internal/usecase/auth"
	"github.com/micartera/micartera-backend/internal/usecase/dashboard"
	"github.com/micartera/micartera-backend/internal/usecase/ledger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Setup Database and run migrations
	db, err := postgres.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 3. Initialize Repositories (Postgres)
	userRepo := postgres.NewUserRepository(db)
	portfolioRepo := postgres.NewPortfolioRepository(db)

	// 4. Initialize Services (Use Cases)
	catalog := domain.DefaultCatalog()
	authService := auth.NewAuthService(userRepo, portfolioRepo, cfg.BcryptCost)
	ledgerService := ledger.NewLedgerService(portfolioRepo, catalog)
	dashboardService := dashboard.NewDashboardService(portfolioRepo)

	// 5. Start HTTP Server
	handler := rest.NewServer(authService, ledgerService, dashboardService, catalog, cfg.AllowedOrigins)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(server)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")
}
