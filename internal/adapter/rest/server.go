// Package rest exposes the service over JSON HTTP: the auth and
// portfolio contract routes plus the mutation, summary and catalog
// endpoints the frontend drives.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/micartera/micartera-backend/internal/domain"
	"github.com/micartera/micartera-backend/internal/usecase/auth"
	"github.com/micartera/micartera-backend/internal/usecase/dashboard"
	"github.com/micartera/micartera-backend/internal/usecase/ledger"
)

// Server is the HTTP adapter over the use-case services.
type Server struct {
	auth      *auth.AuthService
	ledger    *ledger.LedgerService
	dashboard *dashboard.DashboardService
	catalog   *domain.Catalog
	router    chi.Router
}

// NewServer wires the routes and middleware. allowedOrigins is the
// CORS allow-list; requests from other origins get no CORS headers.
func NewServer(
	authService *auth.AuthService,
	ledgerService *ledger.LedgerService,
	dashboardService *dashboard.DashboardService,
	catalog *domain.Catalog,
	allowedOrigins []string,
) *Server {
	s := &Server{
		auth:      authService,
		ledger:    ledgerService,
		dashboard: dashboardService,
		catalog:   catalog,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)

	r.Route("/portfolio/{portfolioID}", func(r chi.Router) {
		r.Get("/", s.handleGetPortfolio)
		r.Get("/summary", s.handleGetSummary)
		r.Post("/transactions", s.handleAddTransaction)
		r.Delete("/transactions/{transactionID}", s.handleDeleteTransaction)
		r.Put("/assets/{symbol}", s.handleUpdateAsset)
	})

	r.Put("/savings_account/{portfolioID}", s.handleUpdateSavings)
	r.Get("/catalog/{class}", s.handleGetCatalog)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError sends a {"message": ...} body. Messages are
// human-readable and never leak internal error detail.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps known domain errors to their status codes;
// anything else is an internal error with a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrPortfolioNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUnknownSymbol),
		errors.Is(err, domain.ErrInsufficientCash):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
