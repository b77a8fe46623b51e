package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a portfolio transaction.
// The Spanish names are kept verbatim: they are the wire format of
// every recorded history.
type TransactionType string

const (
	TypeIngreso   TransactionType = "ingreso"   // cash deposit
	TypeInteres   TransactionType = "interes"   // interest received
	TypeDividendo TransactionType = "dividendo" // dividend received
	TypeVenta     TransactionType = "venta"     // asset sale
	TypeRetiro    TransactionType = "retiro"    // cash withdrawal
	TypeCompra    TransactionType = "compra"    // asset purchase
)

// Transaction represents a single movement against the portfolio.
// AssetSymbol is set for compra/venta (and optionally for an
// asset-linked dividendo); pure cash movements leave it empty.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Type        TransactionType
	Amount      decimal.Decimal // ABSOLUTE VALUE (always positive)
	AssetSymbol string
}

// Validate ensures the transaction adheres to domain rules.
func (t *Transaction) Validate() error {
	switch t.Type {
	case TypeIngreso, TypeInteres, TypeRetiro:
		if t.AssetSymbol != "" {
			return errors.New("cash movements cannot reference an asset")
		}
	case TypeDividendo:
		// May or may not be linked to an asset.
	case TypeCompra, TypeVenta:
		if t.AssetSymbol == "" {
			return errors.New("compra and venta require an asset symbol")
		}
	default:
		return errors.New("unknown transaction type: " + string(t.Type))
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}

	return nil
}

// CashFlow returns the signed effect of the transaction on the
// savings account: ingreso, interes, dividendo and venta add cash;
// retiro and compra remove it.
func (t *Transaction) CashFlow() decimal.Decimal {
	switch t.Type {
	case TypeRetiro, TypeCompra:
		return t.Amount.Neg()
	default:
		return t.Amount
	}
}

// MovesPosition reports whether the transaction changes an asset
// position in addition to the cash balance.
func (t *Transaction) MovesPosition() bool {
	return t.Type == TypeCompra || t.Type == TypeVenta
}
