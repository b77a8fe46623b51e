package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Portfolio is the aggregate owned by exactly one user: the asset
// positions, the transaction history (newest first) and the savings
// account cash balance. The balance is derived incrementally as
// transactions are applied or reverted, never recomputed from the
// history.
type Portfolio struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Assets         []Asset
	Transactions   []Transaction
	SavingsAccount decimal.Decimal
}

// NewPortfolio creates an empty portfolio for a user.
func NewPortfolio(userID uuid.UUID, name string) *Portfolio {
	return &Portfolio{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		SavingsAccount: decimal.Zero,
	}
}

// Apply records a transaction against the portfolio:
//  1. Validate the transaction.
//  2. For compra/venta, classify the symbol and update the position
//     (compra adds to cost basis; venta reduces it, booking any
//     excess over the remaining basis as realized profit).
//  3. Apply the cash-flow delta to the savings account.
//  4. Prepend the transaction to the history.
//
// Classification happens before any state is touched, so an unknown
// symbol aborts with no partial mutation.
func (p *Portfolio) Apply(tx Transaction, catalog *Catalog) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	if tx.MovesPosition() {
		class, err := catalog.Classify(tx.AssetSymbol)
		if err != nil {
			return err
		}

		i := p.ensureAsset(tx.AssetSymbol, class)
		switch tx.Type {
		case TypeCompra:
			p.Assets[i].buy(tx.Amount)
		case TypeVenta:
			p.Assets[i].sell(tx.Amount)
		}
	}

	p.SavingsAccount = p.SavingsAccount.Add(tx.CashFlow())
	p.Transactions = append([]Transaction{tx}, p.Transactions...)
	return nil
}

// Revert undoes the effect of a recorded transaction and removes it
// from the history. An unknown id is a silent no-op.
//
// Reverting a venta is an approximation: realized profit is tracked
// only as a per-asset aggregate, so the reversal unwinds realized
// profit first (up to the sale amount) and restores the remainder to
// the cost basis. When a single sale is involved this inverts it
// exactly; with multiple sales of the same asset the split between
// basis and realized profit is best-effort.
func (p *Portfolio) Revert(id uuid.UUID, catalog *Catalog) (Transaction, bool, error) {
	txIdx := -1
	for i := range p.Transactions {
		if p.Transactions[i].ID == id {
			txIdx = i
			break
		}
	}
	if txIdx < 0 {
		return Transaction{}, false, nil
	}
	tx := p.Transactions[txIdx]

	if tx.MovesPosition() {
		class, err := catalog.Classify(tx.AssetSymbol)
		if err != nil {
			return Transaction{}, false, err
		}

		switch tx.Type {
		case TypeCompra:
			if i := p.assetIndex(tx.AssetSymbol, class); i >= 0 {
				a := &p.Assets[i]
				a.TotalInvested = a.TotalInvested.Sub(tx.Amount)
				if a.TotalInvested.IsNegative() {
					a.TotalInvested = decimal.Zero
				}
				if a.empty() {
					p.removeAssetAt(i)
				}
			}
		case TypeVenta:
			// Recreate the position if it was fully liquidated and
			// removed since the sale.
			i := p.ensureAsset(tx.AssetSymbol, class)
			a := &p.Assets[i]
			unwound := decimal.Min(decimal.Max(a.RealizedProfit, decimal.Zero), tx.Amount)
			a.RealizedProfit = a.RealizedProfit.Sub(unwound)
			a.TotalInvested = a.TotalInvested.Add(tx.Amount.Sub(unwound))
			if a.empty() {
				p.removeAssetAt(i)
			}
		}
	}

	p.SavingsAccount = p.SavingsAccount.Sub(tx.CashFlow())
	p.Transactions = append(p.Transactions[:txIdx], p.Transactions[txIdx+1:]...)
	return tx, true, nil
}

// ApplyAssetUpdate mutates a position directly, outside the
// transaction flow:
//   - forceDelete removes the record unconditionally.
//   - isLoss writes off the entire remaining cost basis as a realized
//     loss, dropping the record when the resulting realized profit is
//     exactly zero.
//   - otherwise amount is applied as a delta to the cost basis,
//     clamped at zero with any negative overflow booked as realized
//     profit (the sale rule).
func (p *Portfolio) ApplyAssetUpdate(symbol string, class AssetClass, amount decimal.Decimal, isLoss, forceDelete bool) {
	i := p.assetIndex(symbol, class)

	if forceDelete {
		if i >= 0 {
			p.removeAssetAt(i)
		}
		return
	}

	if isLoss {
		if i < 0 {
			return
		}
		a := &p.Assets[i]
		a.declareLoss()
		if a.RealizedProfit.IsZero() {
			p.removeAssetAt(i)
		}
		return
	}

	if i < 0 {
		a := Asset{ID: uuid.New(), Symbol: symbol, Class: class}
		if amount.IsNegative() {
			a.RealizedProfit = amount.Neg()
		} else {
			a.TotalInvested = amount
		}
		p.Assets = append(p.Assets, a)
		return
	}

	a := &p.Assets[i]
	a.TotalInvested = a.TotalInvested.Add(amount)
	if a.TotalInvested.IsNegative() {
		a.RealizedProfit = a.RealizedProfit.Add(a.TotalInvested.Neg())
		a.TotalInvested = decimal.Zero
	}
}

// FindAsset returns the position for a symbol and class.
func (p *Portfolio) FindAsset(symbol string, class AssetClass) (Asset, bool) {
	if i := p.assetIndex(symbol, class); i >= 0 {
		return p.Assets[i], true
	}
	return Asset{}, false
}

// InvestedIn sums the cost basis of every position of one class.
func (p *Portfolio) InvestedIn(class AssetClass) decimal.Decimal {
	total := decimal.Zero
	for i := range p.Assets {
		if p.Assets[i].Class == class {
			total = total.Add(p.Assets[i].TotalInvested)
		}
	}
	return total
}

// TotalByType sums the amounts of every transaction of one type.
func (p *Portfolio) TotalByType(t TransactionType) decimal.Decimal {
	total := decimal.Zero
	for i := range p.Transactions {
		if p.Transactions[i].Type == t {
			total = total.Add(p.Transactions[i].Amount)
		}
	}
	return total
}

// RealizedProfitTotal sums the realized profit and loss across all
// positions still on the books.
func (p *Portfolio) RealizedProfitTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Assets {
		total = total.Add(p.Assets[i].RealizedProfit)
	}
	return total
}

func (p *Portfolio) assetIndex(symbol string, class AssetClass) int {
	for i := range p.Assets {
		if p.Assets[i].Symbol == symbol && p.Assets[i].Class == class {
			return i
		}
	}
	return -1
}

// ensureAsset returns the index of the position for symbol/class,
// creating an empty record when none exists.
func (p *Portfolio) ensureAsset(symbol string, class AssetClass) int {
	if i := p.assetIndex(symbol, class); i >= 0 {
		return i
	}
	p.Assets = append(p.Assets, Asset{
		ID:     uuid.New(),
		Symbol: symbol,
		Class:  class,
	})
	return len(p.Assets) - 1
}

func (p *Portfolio) removeAssetAt(i int) {
	p.Assets = append(p.Assets[:i], p.Assets[i+1:]...)
}
