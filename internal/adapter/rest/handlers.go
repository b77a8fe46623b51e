package rest

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/micartera/micartera-backend/internal/domain"
	"github.com/micartera/micartera-backend/internal/usecase/ledger"
)

// POST /register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// GET /portfolio/{portfolioID}
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID, ok := parsePortfolioID(w, r)
	if !ok {
		return
	}

	portfolio, err := s.ledger.GetPortfolio(r.Context(), portfolioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPortfolioResponse(portfolio))
}

// POST /portfolio/{portfolioID}/transactions
func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	portfolioID, ok := parsePortfolioID(w, r)
	if !ok {
		return
	}

	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txType, ok := parseTransactionType(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid transaction type")
		return
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		writeError(w, http.StatusBadRequest, "amount must be greater than 0")
		return
	}
	if (txType == domain.TypeCompra || txType == domain.TypeVenta) && req.AssetID == "" {
		writeError(w, http.StatusBadRequest, "assetId is required for compra and venta")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	tx, err := s.ledger.AddTransaction(r.Context(), ledger.AddTransactionInput{
		PortfolioID: portfolioID,
		Type:        txType,
		Amount:      req.Amount,
		Date:        date,
		AssetSymbol: req.AssetID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(*tx))
}

// DELETE /portfolio/{portfolioID}/transactions/{transactionID}
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	portfolioID, ok := parsePortfolioID(w, r)
	if !ok {
		return
	}
	transactionID, err := uuid.Parse(chi.URLParam(r, "transactionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), portfolioID, transactionID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /portfolio/{portfolioID}/assets/{symbol}
func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	portfolioID, ok := parsePortfolioID(w, r)
	if !ok {
		return
	}
	symbol := chi.URLParam(r, "symbol")

	var req updateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	class := domain.AssetClass(req.Type)
	if class != domain.ClassCrypto && class != domain.ClassStock {
		writeError(w, http.StatusBadRequest, "type must be crypto or stock")
		return
	}

	portfolio, err := s.ledger.UpdateAsset(r.Context(), ledger.UpdateAssetInput{
		PortfolioID: portfolioID,
		Symbol:      symbol,
		Class:       class,
		Amount:      req.Amount,
		IsLoss:      req.IsLoss,
		ForceDelete: req.ForceDelete,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPortfolioResponse(portfolio))
}

// PUT /savings_account/{portfolioID}
func (s *Server) handleUpdateSavings(w http.ResponseWriter, r *http.Request) {
	portfolioID, ok := parsePortfolioID(w, r)
	if !ok {
		return
	}

	var req savingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.ledger.SetSavings(r.Context(), portfolioID, req.Total); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, savingsAccountResponse{
		PortfolioID: portfolioID.String(),
		Total:       req.Total,
	})
}

// GET /portfolio/{portfolioID}/summary
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	portfolioID, ok := parsePortfolioID(w, r)
	if !ok {
		return
	}

	summary, err := s.dashboard.GetSummary(r.Context(), portfolioID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// GET /catalog/{class}
func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	class := domain.AssetClass(chi.URLParam(r, "class"))
	if class != domain.ClassCrypto && class != domain.ClassStock {
		writeError(w, http.StatusBadRequest, "class must be crypto or stock")
		return
	}

	entries := s.catalog.Entries(class)
	out := make([]catalogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, catalogEntryResponse{ID: e.Symbol, Name: e.Name, URL: e.IconURL})
	}
	writeJSON(w, http.StatusOK, out)
}

func parsePortfolioID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "portfolioID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid portfolio id")
		return uuid.Nil, false
	}
	return id, true
}

func parseTransactionType(raw string) (domain.TransactionType, bool) {
	t := domain.TransactionType(raw)
	switch t {
	case domain.TypeIngreso, domain.TypeInteres, domain.TypeDividendo,
		domain.TypeVenta, domain.TypeRetiro, domain.TypeCompra:
		return t, true
	}
	return "", false
}

// parseDate accepts the form's plain date as well as a full
// timestamp. An empty string means "now" (decided by the service).
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse("2006-01-02", raw); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, raw)
}
