package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/micartera/micartera-backend/internal/domain"
)

// portfolioRepository implements domain.PortfolioRepository
type portfolioRepository struct {
	db *DB
}

// NewPortfolioRepository creates a new portfolio repository.
func NewPortfolioRepository(db *DB) domain.PortfolioRepository {
	return &portfolioRepository{db: db}
}

type portfolioRow struct {
	ID     uuid.UUID       `db:"id"`
	UserID uuid.UUID       `db:"user_id"`
	Name   string          `db:"name"`
	Total  decimal.Decimal `db:"total"`
}

type assetRow struct {
	ID             uuid.UUID       `db:"id"`
	Symbol         string          `db:"symbol"`
	Class          string          `db:"class"`
	TotalInvested  decimal.Decimal `db:"total_invested"`
	RealizedProfit decimal.Decimal `db:"realized_profit"`
}

type transactionRow struct {
	ID          uuid.UUID       `db:"id"`
	Date        time.Time       `db:"date"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	AssetSymbol sql.NullString  `db:"asset_symbol"`
}

// Create stores a new portfolio together with its savings account row.
func (r *portfolioRepository) Create(ctx context.Context, portfolio *domain.Portfolio) error {
	dbTx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.ExecContext(ctx,
		`INSERT INTO portfolios (id, user_id, name) VALUES ($1, $2, $3)`,
		portfolio.ID, portfolio.UserID, portfolio.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	_, err = dbTx.ExecContext(ctx,
		`INSERT INTO savings_accounts (portfolio_id, total) VALUES ($1, $2)`,
		portfolio.ID, portfolio.SavingsAccount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert savings account: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a portfolio with its assets, history and savings
// balance.
func (r *portfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Portfolio, error) {
	return r.get(ctx, `
		SELECT p.id, p.user_id, p.name, s.total
		FROM portfolios p
		JOIN savings_accounts s ON s.portfolio_id = p.id
		WHERE p.id = $1
	`, id)
}

// GetByUserID retrieves the portfolio owned by a user.
func (r *portfolioRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error) {
	return r.get(ctx, `
		SELECT p.id, p.user_id, p.name, s.total
		FROM portfolios p
		JOIN savings_accounts s ON s.portfolio_id = p.id
		WHERE p.user_id = $1
	`, userID)
}

func (r *portfolioRepository) get(ctx context.Context, query string, arg interface{}) (*domain.Portfolio, error) {
	var row portfolioRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	portfolio := &domain.Portfolio{
		ID:             row.ID,
		UserID:         row.UserID,
		Name:           row.Name,
		SavingsAccount: row.Total,
	}

	var assets []assetRow
	err := r.db.SelectContext(ctx, &assets, `
		SELECT id, symbol, class, total_invested, realized_profit
		FROM assets
		WHERE portfolio_id = $1
		ORDER BY symbol
	`, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	for _, a := range assets {
		portfolio.Assets = append(portfolio.Assets, domain.Asset{
			ID:             a.ID,
			Symbol:         a.Symbol,
			Class:          domain.AssetClass(a.Class),
			TotalInvested:  a.TotalInvested,
			RealizedProfit: a.RealizedProfit,
		})
	}

	var transactions []transactionRow
	err = r.db.SelectContext(ctx, &transactions, `
		SELECT id, date, type, amount, asset_symbol
		FROM transactions
		WHERE portfolio_id = $1
		ORDER BY position
	`, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	for _, t := range transactions {
		portfolio.Transactions = append(portfolio.Transactions, domain.Transaction{
			ID:          t.ID,
			Date:        t.Date,
			Type:        domain.TransactionType(t.Type),
			Amount:      t.Amount,
			AssetSymbol: t.AssetSymbol.String,
		})
	}

	return portfolio, nil
}

// Save persists a full portfolio snapshot: savings total, assets and
// history are written inside one database transaction so a failure
// leaves the stored state untouched.
func (r *portfolioRepository) Save(ctx context.Context, portfolio *domain.Portfolio) error {
	dbTx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx,
		`UPDATE savings_accounts SET total = $1 WHERE portfolio_id = $2`,
		portfolio.SavingsAccount, portfolio.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update savings account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPortfolioNotFound
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM assets WHERE portfolio_id = $1`, portfolio.ID); err != nil {
		return fmt.Errorf("failed to clear assets: %w", err)
	}
	for _, a := range portfolio.Assets {
		_, err := dbTx.ExecContext(ctx, `
			INSERT INTO assets (id, portfolio_id, symbol, class, total_invested, realized_profit)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, portfolio.ID, a.Symbol, string(a.Class), a.TotalInvested, a.RealizedProfit)
		if err != nil {
			return fmt.Errorf("failed to insert asset: %w", err)
		}
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE portfolio_id = $1`, portfolio.ID); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	for i, t := range portfolio.Transactions {
		var symbol interface{}
		if t.AssetSymbol != "" {
			symbol = t.AssetSymbol
		}
		_, err := dbTx.ExecContext(ctx, `
			INSERT INTO transactions (id, portfolio_id, date, type, amount, asset_symbol, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, t.ID, portfolio.ID, t.Date, string(t.Type), t.Amount, symbol, i)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateSavings persists only the savings account total.
func (r *portfolioRepository) UpdateSavings(ctx context.Context, id uuid.UUID, total decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE savings_accounts SET total = $1 WHERE portfolio_id = $2`,
		total, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update savings account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}
