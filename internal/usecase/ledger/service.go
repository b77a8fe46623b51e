package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/micartera/micartera-backend/internal/domain"
)

// AddTransactionInput represents the input for recording a transaction.
type AddTransactionInput struct {
	PortfolioID uuid.UUID
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Date        time.Time // zero value defaults to now
	AssetSymbol string
}

// UpdateAssetInput represents the input for a direct asset mutation.
type UpdateAssetInput struct {
	PortfolioID uuid.UUID
	Symbol      string
	Class       domain.AssetClass
	Amount      decimal.Decimal
	IsLoss      bool
	ForceDelete bool
}

// LedgerService orchestrates portfolio mutations: it loads the
// portfolio, applies the event through the domain rules and persists
// the result. A failed application persists nothing.
type LedgerService struct {
	PortfolioRepo domain.PortfolioRepository
	Catalog       *domain.Catalog
}

// NewLedgerService creates a new LedgerService instance.
func NewLedgerService(portfolioRepo domain.PortfolioRepository, catalog *domain.Catalog) *LedgerService {
	return &LedgerService{
		PortfolioRepo: portfolioRepo,
		Catalog:       catalog,
	}
}

// GetPortfolio loads a portfolio with its assets, history and savings
// balance.
func (s *LedgerService) GetPortfolio(ctx context.Context, portfolioID uuid.UUID) (*domain.Portfolio, error) {
	return s.PortfolioRepo.GetByID(ctx, portfolioID)
}

// AddTransaction records a transaction.
// Logic:
//  1. Validate the amount is positive.
//  2. Load the portfolio.
//  3. For compra and retiro, reject when the savings balance cannot
//     cover the amount.
//  4. Apply the transaction (classification failure aborts here).
//  5. Persist the updated portfolio.
func (s *LedgerService) AddTransaction(ctx context.Context, input AddTransactionInput) (*domain.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("transaction amount must be positive")
	}

	portfolio, err := s.PortfolioRepo.GetByID(ctx, input.PortfolioID)
	if err != nil {
		return nil, err
	}

	if input.Type == domain.TypeCompra || input.Type == domain.TypeRetiro {
		if portfolio.SavingsAccount.LessThan(input.Amount) {
			return nil, domain.ErrInsufficientCash
		}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx := domain.Transaction{
		ID:          uuid.New(),
		Date:        date,
		Type:        input.Type,
		Amount:      input.Amount,
		AssetSymbol: input.AssetSymbol,
	}

	if err := portfolio.Apply(tx, s.Catalog); err != nil {
		return nil, err
	}

	if err := s.PortfolioRepo.Save(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to persist portfolio: %w", err)
	}

	return &tx, nil
}

// DeleteTransaction reverses and removes a recorded transaction.
// An unknown transaction id is a silent no-op.
func (s *LedgerService) DeleteTransaction(ctx context.Context, portfolioID, transactionID uuid.UUID) error {
	portfolio, err := s.PortfolioRepo.GetByID(ctx, portfolioID)
	if err != nil {
		return err
	}

	_, found, err := portfolio.Revert(transactionID, s.Catalog)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	if err := s.PortfolioRepo.Save(ctx, portfolio); err != nil {
		return fmt.Errorf("failed to persist portfolio: %w", err)
	}
	return nil
}

// UpdateAsset mutates a position directly, outside the transaction
// flow (declare a total loss, remove a record, adjust the basis).
func (s *LedgerService) UpdateAsset(ctx context.Context, input UpdateAssetInput) (*domain.Portfolio, error) {
	if input.Class != domain.ClassCrypto && input.Class != domain.ClassStock {
		return nil, errors.New("asset class must be crypto or stock")
	}

	portfolio, err := s.PortfolioRepo.GetByID(ctx, input.PortfolioID)
	if err != nil {
		return nil, err
	}

	portfolio.ApplyAssetUpdate(input.Symbol, input.Class, input.Amount, input.IsLoss, input.ForceDelete)

	if err := s.PortfolioRepo.Save(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to persist portfolio: %w", err)
	}
	return portfolio, nil
}

// SetSavings overwrites the savings account total, the remote
// persistence path used by the savings_account endpoint.
func (s *LedgerService) SetSavings(ctx context.Context, portfolioID uuid.UUID, total decimal.Decimal) error {
	if _, err := s.PortfolioRepo.GetByID(ctx, portfolioID); err != nil {
		return err
	}
	return s.PortfolioRepo.UpdateSavings(ctx, portfolioID, total)
}
