package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create stores a new user.
	Create(ctx context.Context, user *User) error

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound when no account matches.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// PortfolioRepository defines the interface for portfolio persistence
// operations. The ledger loads a portfolio, applies an event in
// memory and saves the result, so implementations are a swappable
// boundary between the remote database and a local store.
type PortfolioRepository interface {
	// Create stores a new, empty portfolio.
	Create(ctx context.Context, portfolio *Portfolio) error

	// GetByID retrieves a portfolio with its assets, transactions and
	// savings balance. Returns ErrPortfolioNotFound when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*Portfolio, error)

	// GetByUserID retrieves the portfolio owned by a user.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Portfolio, error)

	// Save persists a full portfolio snapshot after a mutation.
	Save(ctx context.Context, portfolio *Portfolio) error

	// UpdateSavings persists only the savings account total.
	UpdateSavings(ctx context.Context, id uuid.UUID, total decimal.Decimal) error
}
