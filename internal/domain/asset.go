package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetClass distinguishes the two kinds of tradable assets.
type AssetClass string

const (
	ClassCrypto AssetClass = "crypto"
	ClassStock  AssetClass = "stock"
)

// Asset represents an aggregated position in one symbol, valued by
// cumulative invested cost rather than quantity.
// Invariant: TotalInvested is never negative; selling beyond the
// recorded cost basis books the excess into RealizedProfit instead.
type Asset struct {
	ID             uuid.UUID
	Symbol         string
	Class          AssetClass
	TotalInvested  decimal.Decimal
	RealizedProfit decimal.Decimal
}

// buy increases the recorded cost basis.
func (a *Asset) buy(amount decimal.Decimal) {
	a.TotalInvested = a.TotalInvested.Add(amount)
}

// sell decreases the cost basis by amount. If the sale exceeds the
// remaining basis the excess is booked as realized profit and the
// basis is clamped to zero.
func (a *Asset) sell(amount decimal.Decimal) {
	remaining := a.TotalInvested.Sub(amount)
	if remaining.IsNegative() {
		a.RealizedProfit = a.RealizedProfit.Add(remaining.Neg())
		a.TotalInvested = decimal.Zero
		return
	}
	a.TotalInvested = remaining
}

// declareLoss writes off the entire remaining cost basis as a
// realized loss.
func (a *Asset) declareLoss() {
	a.RealizedProfit = a.RealizedProfit.Sub(a.TotalInvested)
	a.TotalInvested = decimal.Zero
}

// empty reports whether the position carries no cost basis and no
// residual realized profit or loss worth keeping on the books.
func (a *Asset) empty() bool {
	return a.TotalInvested.IsZero() && a.RealizedProfit.IsZero()
}
