package dashboard

import (
	"context"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/micartera/micartera-backend/internal/domain"
)

// Amount is a monetary value together with its EUR display string.
type Amount struct {
	Value     decimal.Decimal
	Formatted string
}

// Summary holds the aggregate figures shown on the dashboard.
type Summary struct {
	Patrimonio     Amount // assets + savings
	Cartera        Amount // assets only
	Crypto         Amount
	Stocks         Amount
	Savings        Amount
	Interest       Amount
	Dividends      Amount
	RealizedProfit Amount
	Months         []MonthGroup
}

// MonthGroup is the slice of history belonging to one calendar month,
// newest month first and newest transaction first within the month.
type MonthGroup struct {
	Month        string // "2026-08"
	Transactions []domain.Transaction
}

// DashboardService computes portfolio summaries for display.
type DashboardService struct {
	PortfolioRepo domain.PortfolioRepository
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(portfolioRepo domain.PortfolioRepository) *DashboardService {
	return &DashboardService{PortfolioRepo: portfolioRepo}
}

// GetSummary calculates the dashboard totals for a portfolio:
// patrimonio (every position plus savings), cartera (positions only),
// per-class invested totals, accumulated interest and dividends,
// aggregate realized profit, and the history grouped by month.
func (s *DashboardService) GetSummary(ctx context.Context, portfolioID uuid.UUID) (*Summary, error) {
	portfolio, err := s.PortfolioRepo.GetByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	crypto := portfolio.InvestedIn(domain.ClassCrypto)
	stocks := portfolio.InvestedIn(domain.ClassStock)
	cartera := crypto.Add(stocks)

	return &Summary{
		Patrimonio:     amountOf(cartera.Add(portfolio.SavingsAccount)),
		Cartera:        amountOf(cartera),
		Crypto:         amountOf(crypto),
		Stocks:         amountOf(stocks),
		Savings:        amountOf(portfolio.SavingsAccount),
		Interest:       amountOf(portfolio.TotalByType(domain.TypeInteres)),
		Dividends:      amountOf(portfolio.TotalByType(domain.TypeDividendo)),
		RealizedProfit: amountOf(portfolio.RealizedProfitTotal()),
		Months:         groupByMonth(portfolio.Transactions),
	}, nil
}

// groupByMonth sorts the history by date descending and buckets it by
// calendar month.
func groupByMonth(transactions []domain.Transaction) []MonthGroup {
	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	var groups []MonthGroup
	for _, tx := range sorted {
		key := tx.Date.Format("2006-01")
		if len(groups) == 0 || groups[len(groups)-1].Month != key {
			groups = append(groups, MonthGroup{Month: key})
		}
		last := &groups[len(groups)-1]
		last.Transactions = append(last.Transactions, tx)
	}
	return groups
}

// amountOf pairs a decimal with its EUR display string. Amounts are
// rounded to cents for display only; the stored value is untouched.
func amountOf(value decimal.Decimal) Amount {
	cents := value.Shift(2).Round(0).IntPart()
	return Amount{
		Value:     value,
		Formatted: money.New(cents, money.EUR).Display(),
	}
}
