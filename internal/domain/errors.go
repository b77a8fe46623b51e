package domain

import "errors"

// Sentinel errors shared across the service layers. The REST adapter
// maps them to HTTP status codes; messages never expose internals.
var (
	// ErrUnknownSymbol is returned when an asset symbol cannot be
	// classified against the reference catalogs.
	ErrUnknownSymbol = errors.New("unknown asset symbol")

	// ErrInsufficientCash is returned when a purchase or withdrawal
	// exceeds the available savings balance.
	ErrInsufficientCash = errors.New("insufficient cash in savings account")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for a failed login. Wrong
	// email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPortfolioNotFound is returned when no portfolio matches the
	// lookup.
	ErrPortfolioNotFound = errors.New("portfolio not found")
)
