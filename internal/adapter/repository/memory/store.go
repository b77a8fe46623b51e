// Package memory provides in-memory repository implementations. They
// back the handler tests and serve as the local-store persistence
// variant: same boundary as postgres, no database.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/micartera/micartera-backend/internal/domain"
)

// Store holds all in-memory state shared by the repositories.
type Store struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]domain.User
	usersByEmail map[string]uuid.UUID
	portfolios   map[uuid.UUID]domain.Portfolio
	byUser       map[uuid.UUID]uuid.UUID // user id -> portfolio id
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]domain.User),
		usersByEmail: make(map[string]uuid.UUID),
		portfolios:   make(map[uuid.UUID]domain.Portfolio),
		byUser:       make(map[uuid.UUID]uuid.UUID),
	}
}

/* ---- User repository ---- */

type userRepository struct{ s *Store }

// NewUserRepository creates a user repository backed by the store.
func NewUserRepository(s *Store) domain.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.usersByEmail[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	r.s.users[user.ID] = *user
	r.s.usersByEmail[user.Email] = user.ID
	return nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := r.s.users[id]
	return &user, nil
}

func (r *userRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

/* ---- Portfolio repository ---- */

type portfolioRepository struct{ s *Store }

// NewPortfolioRepository creates a portfolio repository backed by the
// store. Portfolios are deep-copied in and out so callers never share
// slices with the store.
func NewPortfolioRepository(s *Store) domain.PortfolioRepository {
	return &portfolioRepository{s: s}
}

func (r *portfolioRepository) Create(_ context.Context, portfolio *domain.Portfolio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.portfolios[portfolio.ID] = clonePortfolio(portfolio)
	r.s.byUser[portfolio.UserID] = portfolio.ID
	return nil
}

func (r *portfolioRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Portfolio, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stored, ok := r.s.portfolios[id]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	out := clonePortfolio(&stored)
	return &out, nil
}

func (r *portfolioRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error) {
	r.s.mu.RLock()
	id, ok := r.s.byUser[userID]
	r.s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *portfolioRepository) Save(_ context.Context, portfolio *domain.Portfolio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.portfolios[portfolio.ID]; !ok {
		return domain.ErrPortfolioNotFound
	}
	r.s.portfolios[portfolio.ID] = clonePortfolio(portfolio)
	return nil
}

func (r *portfolioRepository) UpdateSavings(_ context.Context, id uuid.UUID, total decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.portfolios[id]
	if !ok {
		return domain.ErrPortfolioNotFound
	}
	stored.SavingsAccount = total
	r.s.portfolios[id] = stored
	return nil
}

func clonePortfolio(p *domain.Portfolio) domain.Portfolio {
	out := *p
	out.Assets = append([]domain.Asset(nil), p.Assets...)
	out.Transactions = append([]domain.Transaction(nil), p.Transactions...)
	return out
}
