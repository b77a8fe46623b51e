package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/micartera/micartera-backend/internal/domain"
	"github.com/micartera/micartera-backend/internal/usecase/auth"
	"github.com/micartera/micartera-backend/internal/usecase/dashboard"
)

// Identifiers are serialized as strings so clients never have to fit
// a uuid into a float.

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addTransactionRequest struct {
	Type    string          `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Date    string          `json:"date"`
	AssetID string          `json:"assetId"`
}

type updateAssetRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	IsLoss      bool            `json:"isLoss"`
	ForceDelete bool            `json:"forceDelete"`
}

type savingsRequest struct {
	Total decimal.Decimal `json:"total"`
}

type sessionResponse struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	PortfolioID    string          `json:"portfolio_id"`
	SavingsAccount decimal.Decimal `json:"savingsAccount"`
}

func toSessionResponse(s *auth.Session) sessionResponse {
	return sessionResponse{
		ID:             s.UserID.String(),
		Email:          s.Email,
		PortfolioID:    s.PortfolioID.String(),
		SavingsAccount: s.Savings,
	}
}

type assetResponse struct {
	ID             string          `json:"id"`
	Symbol         string          `json:"symbol"`
	Type           string          `json:"type"`
	TotalInvested  decimal.Decimal `json:"totalInvested"`
	RealizedProfit decimal.Decimal `json:"realizedProfit"`
}

type transactionResponse struct {
	ID      string          `json:"id"`
	Date    string          `json:"date"`
	Type    string          `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	AssetID string          `json:"assetId,omitempty"`
}

type savingsAccountResponse struct {
	PortfolioID string          `json:"portfolio_id"`
	Total       decimal.Decimal `json:"total"`
}

type portfolioResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Assets         []assetResponse        `json:"assets"`
	Transactions   []transactionResponse  `json:"transactions"`
	SavingsAccount savingsAccountResponse `json:"savings_account"`
}

func toPortfolioResponse(p *domain.Portfolio) portfolioResponse {
	out := portfolioResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Assets:       make([]assetResponse, 0, len(p.Assets)),
		Transactions: make([]transactionResponse, 0, len(p.Transactions)),
		SavingsAccount: savingsAccountResponse{
			PortfolioID: p.ID.String(),
			Total:       p.SavingsAccount,
		},
	}
	for _, a := range p.Assets {
		out.Assets = append(out.Assets, assetResponse{
			ID:             a.ID.String(),
			Symbol:         a.Symbol,
			Type:           string(a.Class),
			TotalInvested:  a.TotalInvested,
			RealizedProfit: a.RealizedProfit,
		})
	}
	for _, t := range p.Transactions {
		out.Transactions = append(out.Transactions, toTransactionResponse(t))
	}
	return out
}

func toTransactionResponse(t domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:      t.ID.String(),
		Date:    t.Date.Format(time.RFC3339),
		Type:    string(t.Type),
		Amount:  t.Amount,
		AssetID: t.AssetSymbol,
	}
}

type catalogEntryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type amountResponse struct {
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}

type monthGroupResponse struct {
	Month        string                `json:"month"`
	Transactions []transactionResponse `json:"transactions"`
}

type summaryResponse struct {
	Patrimonio     amountResponse       `json:"patrimonio"`
	Cartera        amountResponse       `json:"cartera"`
	Crypto         amountResponse       `json:"crypto"`
	Stocks         amountResponse       `json:"stocks"`
	Savings        amountResponse       `json:"savingsAccount"`
	Interest       amountResponse       `json:"interest"`
	Dividends      amountResponse       `json:"dividends"`
	RealizedProfit amountResponse       `json:"realizedProfit"`
	Months         []monthGroupResponse `json:"months"`
}

func toSummaryResponse(s *dashboard.Summary) summaryResponse {
	out := summaryResponse{
		Patrimonio:     toAmountResponse(s.Patrimonio),
		Cartera:        toAmountResponse(s.Cartera),
		Crypto:         toAmountResponse(s.Crypto),
		Stocks:         toAmountResponse(s.Stocks),
		Savings:        toAmountResponse(s.Savings),
		Interest:       toAmountResponse(s.Interest),
		Dividends:      toAmountResponse(s.Dividends),
		RealizedProfit: toAmountResponse(s.RealizedProfit),
		Months:         make([]monthGroupResponse, 0, len(s.Months)),
	}
	for _, g := range s.Months {
		group := monthGroupResponse{Month: g.Month}
		for _, t := range g.Transactions {
			group.Transactions = append(group.Transactions, toTransactionResponse(t))
		}
		out.Months = append(out.Months, group)
	}
	return out
}

func toAmountResponse(a dashboard.Amount) amountResponse {
	return amountResponse{Value: a.Value, Formatted: a.Formatted}
}
