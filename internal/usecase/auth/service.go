package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/micartera/micartera-backend/internal/domain"
)

// Session describes an authenticated user together with the portfolio
// it owns, as returned by register and login.
type Session struct {
	UserID      uuid.UUID
	Email       string
	PortfolioID uuid.UUID
	Savings     decimal.Decimal
}

// AuthService handles registration and login.
type AuthService struct {
	UserRepo      domain.UserRepository
	PortfolioRepo domain.PortfolioRepository
	BcryptCost    int
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo domain.UserRepository, portfolioRepo domain.PortfolioRepository, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		UserRepo:      userRepo,
		PortfolioRepo: portfolioRepo,
		BcryptCost:    bcryptCost,
	}
}

// Register creates a new user with an empty portfolio.
// Logic:
//  1. Validate that email and password are present.
//  2. Reject an email that already has an account.
//  3. Hash the password with bcrypt; plaintext is never stored.
//  4. Create the user and its portfolio (savings balance zero).
func (s *AuthService) Register(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	if _, err := s.UserRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	portfolio := domain.NewPortfolio(user.ID, "Portfolio de "+email)
	if err := s.PortfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return &Session{
		UserID:      user.ID,
		Email:       user.Email,
		PortfolioID: portfolio.ID,
		Savings:     portfolio.SavingsAccount,
	}, nil
}

// Login authenticates a user by email and password. Wrong email and
// wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	portfolio, err := s.PortfolioRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	return &Session{
		UserID:      user.ID,
		Email:       user.Email,
		PortfolioID: portfolio.ID,
		Savings:     portfolio.SavingsAccount,
	}, nil
}
