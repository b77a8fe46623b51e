package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTx(txType TransactionType, amount int64, symbol string) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Date:        time.Now(),
		Type:        txType,
		Amount:      decimal.NewFromInt(amount),
		AssetSymbol: symbol,
	}
}

func TestPortfolio_Apply_CashFlowSigns(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name   string
		txType TransactionType
		symbol string
		want   int64
	}{
		{"ingreso adds cash", TypeIngreso, "", 100},
		{"interes adds cash", TypeInteres, "", 100},
		{"dividendo adds cash", TypeDividendo, "", 100},
		{"venta adds cash", TypeVenta, "BTC", 100},
		{"retiro removes cash", TypeRetiro, "", -100},
		{"compra removes cash", TypeCompra, "BTC", -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPortfolio(uuid.New(), "test")
			require.NoError(t, p.Apply(newTx(tt.txType, 100, tt.symbol), catalog))
			assert.True(t, decimal.NewFromInt(tt.want).Equal(p.SavingsAccount),
				"expected savings %d, got %s", tt.want, p.SavingsAccount)
		})
	}
}

func TestPortfolio_Apply_PrependsHistory(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")

	first := newTx(TypeIngreso, 100, "")
	second := newTx(TypeInteres, 5, "")
	require.NoError(t, p.Apply(first, catalog))
	require.NoError(t, p.Apply(second, catalog))

	require.Len(t, p.Transactions, 2)
	assert.Equal(t, second.ID, p.Transactions[0].ID, "newest transaction goes first")
	assert.Equal(t, first.ID, p.Transactions[1].ID)
}

func TestPortfolio_Apply_UnknownSymbolLeavesStateUntouched(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")
	require.NoError(t, p.Apply(newTx(TypeIngreso, 1000, ""), catalog))

	err := p.Apply(newTx(TypeCompra, 100, "NOPE"), catalog)
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	assert.True(t, decimal.NewFromInt(1000).Equal(p.SavingsAccount))
	assert.Len(t, p.Transactions, 1)
	assert.Empty(t, p.Assets)
}

func TestPortfolio_BuyThenSellSameAmount(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")
	require.NoError(t, p.Apply(newTx(TypeCompra, 100, "BTC"), catalog))
	require.NoError(t, p.Apply(newTx(TypeVenta, 100, "BTC"), catalog))

	asset, ok := p.FindAsset("BTC", ClassCrypto)
	require.True(t, ok)
	assert.True(t, asset.TotalInvested.IsZero())
	assert.True(t, asset.RealizedProfit.IsZero())
}

func TestPortfolio_SellBeyondBasisBooksProfit(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")
	require.NoError(t, p.Apply(newTx(TypeCompra, 100, "BTC"), catalog))
	require.NoError(t, p.Apply(newTx(TypeVenta, 150, "BTC"), catalog))

	asset, ok := p.FindAsset("BTC", ClassCrypto)
	require.True(t, ok)
	assert.True(t, asset.TotalInvested.IsZero(), "basis clamps to zero")
	assert.True(t, decimal.NewFromInt(50).Equal(asset.RealizedProfit),
		"excess over basis is realized profit, got %s", asset.RealizedProfit)
}

func TestPortfolio_SellNeverBoughtCreatesAsset(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")
	require.NoError(t, p.Apply(newTx(TypeVenta, 75, "ETH"), catalog))

	asset, ok := p.FindAsset("ETH", ClassCrypto)
	require.True(t, ok)
	assert.True(t, asset.TotalInvested.IsZero())
	assert.True(t, decimal.NewFromInt(75).Equal(asset.RealizedProfit))
	assert.True(t, decimal.NewFromInt(75).Equal(p.SavingsAccount))
}

func TestPortfolio_StockSymbolClassifiesAsStock(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")
	require.NoError(t, p.Apply(newTx(TypeCompra, 200, "AAPL"), catalog))

	asset, ok := p.FindAsset("AAPL", ClassStock)
	require.True(t, ok)
	assert.Equal(t, ClassStock, asset.Class)
	assert.True(t, decimal.NewFromInt(200).Equal(asset.TotalInvested))
}

func TestPortfolio_Revert_UnknownIDIsNoop(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")
	require.NoError(t, p.Apply(newTx(TypeIngreso, 100, ""), catalog))

	_, found, err := p.Revert(uuid.New(), catalog)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, p.Transactions, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(p.SavingsAccount))
}

func TestPortfolio_Revert_CashRoundTrip(t *testing.T) {
	catalog := DefaultCatalog()

	for _, txType := range []TransactionType{TypeIngreso, TypeInteres, TypeDividendo, TypeRetiro} {
		t.Run(string(txType), func(t *testing.T) {
			p := NewPortfolio(uuid.New(), "test")
			require.NoError(t, p.Apply(newTx(TypeIngreso, 1000, ""), catalog))
			before := p.SavingsAccount

			tx := newTx(txType, 40, "")
			require.NoError(t, p.Apply(tx, catalog))
			_, found, err := p.Revert(tx.ID, catalog)
			require.NoError(t, err)
			require.True(t, found)

			assert.True(t, before.Equal(p.SavingsAccount),
				"savings should round-trip, got %s", p.SavingsAccount)
			assert.Len(t, p.Transactions, 1)
		})
	}
}

func TestPortfolio_Revert_BuyRemovesEmptyAsset(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")
	require.NoError(t, p.Apply(newTx(TypeIngreso, 1000, ""), catalog))

	buy := newTx(TypeCompra, 300, "BTC")
	require.NoError(t, p.Apply(buy, catalog))
	assert.True(t, decimal.NewFromInt(700).Equal(p.SavingsAccount))

	_, found, err := p.Revert(buy.ID, catalog)
	require.NoError(t, err)
	require.True(t, found)

	assert.True(t, decimal.NewFromInt(1000).Equal(p.SavingsAccount))
	_, ok := p.FindAsset("BTC", ClassCrypto)
	assert.False(t, ok, "fully reverted position is removed")
}

func TestPortfolio_Revert_PartialBuyKeepsAsset(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")

	require.NoError(t, p.Apply(newTx(TypeCompra, 300, "BTC"), catalog))
	second := newTx(TypeCompra, 200, "BTC")
	require.NoError(t, p.Apply(second, catalog))

	_, found, err := p.Revert(second.ID, catalog)
	require.NoError(t, err)
	require.True(t, found)

	asset, ok := p.FindAsset("BTC", ClassCrypto)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(300).Equal(asset.TotalInvested))
}

func TestPortfolio_Revert_SaleRestoresBasisAndProfit(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")
	require.NoError(t, p.Apply(newTx(TypeCompra, 100, "BTC"), catalog))

	sale := newTx(TypeVenta, 150, "BTC")
	require.NoError(t, p.Apply(sale, catalog))

	_, found, err := p.Revert(sale.ID, catalog)
	require.NoError(t, err)
	require.True(t, found)

	asset, ok := p.FindAsset("BTC", ClassCrypto)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(100).Equal(asset.TotalInvested),
		"basis restored, got %s", asset.TotalInvested)
	assert.True(t, asset.RealizedProfit.IsZero(),
		"realized profit unwound, got %s", asset.RealizedProfit)
}

func TestPortfolio_Revert_NeverBoughtSaleRemovesAsset(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")

	sale := newTx(TypeVenta, 75, "ETH")
	require.NoError(t, p.Apply(sale, catalog))

	_, found, err := p.Revert(sale.ID, catalog)
	require.NoError(t, err)
	require.True(t, found)

	_, ok := p.FindAsset("ETH", ClassCrypto)
	assert.False(t, ok)
	assert.True(t, p.SavingsAccount.IsZero())
}

func TestPortfolio_Revert_SaleRecreatesLiquidatedAsset(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")
	require.NoError(t, p.Apply(newTx(TypeCompra, 100, "BTC"), catalog))

	sale := newTx(TypeVenta, 60, "BTC")
	require.NoError(t, p.Apply(sale, catalog))

	// The position disappears outside the transaction flow.
	p.ApplyAssetUpdate("BTC", ClassCrypto, decimal.Zero, false, true)
	_, ok := p.FindAsset("BTC", ClassCrypto)
	require.False(t, ok)

	_, found, err := p.Revert(sale.ID, catalog)
	require.NoError(t, err)
	require.True(t, found)

	asset, ok := p.FindAsset("BTC", ClassCrypto)
	require.True(t, ok, "asset is recreated with the restored amount")
	assert.True(t, decimal.NewFromInt(60).Equal(asset.TotalInvested))
}

func TestPortfolio_ApplyAssetUpdate(t *testing.T) {
	t.Run("declare loss zeroes basis and books negative profit", func(t *testing.T) {
		catalog := DefaultCatalog()
		p := NewPortfolio(uuid.New(), "test")
		require.NoError(t, p.Apply(newTx(TypeCompra, 400, "SOL"), catalog))

		p.ApplyAssetUpdate("SOL", ClassCrypto, decimal.Zero, true, false)

		asset, ok := p.FindAsset("SOL", ClassCrypto)
		require.True(t, ok)
		assert.True(t, asset.TotalInvested.IsZero())
		assert.True(t, decimal.NewFromInt(-400).Equal(asset.RealizedProfit))
	})

	t.Run("declare loss on zero basis removes the asset", func(t *testing.T) {
		catalog := DefaultCatalog()
		p := NewPortfolio(uuid.New(), "test")
		require.NoError(t, p.Apply(newTx(TypeCompra, 100, "SOL"), catalog))
		require.NoError(t, p.Apply(newTx(TypeVenta, 100, "SOL"), catalog))

		p.ApplyAssetUpdate("SOL", ClassCrypto, decimal.Zero, true, false)

		_, ok := p.FindAsset("SOL", ClassCrypto)
		assert.False(t, ok, "empty position with zero realized profit is removed")
	})

	t.Run("force delete removes unconditionally", func(t *testing.T) {
		catalog := DefaultCatalog()
		p := NewPortfolio(uuid.New(), "test")
		require.NoError(t, p.Apply(newTx(TypeCompra, 100, "BTC"), catalog))

		p.ApplyAssetUpdate("BTC", ClassCrypto, decimal.Zero, false, true)

		_, ok := p.FindAsset("BTC", ClassCrypto)
		assert.False(t, ok)
	})

	t.Run("negative delta overflows into realized profit", func(t *testing.T) {
		catalog := DefaultCatalog()
		p := NewPortfolio(uuid.New(), "test")
		require.NoError(t, p.Apply(newTx(TypeCompra, 100, "BTC"), catalog))

		p.ApplyAssetUpdate("BTC", ClassCrypto, decimal.NewFromInt(-130), false, false)

		asset, ok := p.FindAsset("BTC", ClassCrypto)
		require.True(t, ok)
		assert.True(t, asset.TotalInvested.IsZero())
		assert.True(t, decimal.NewFromInt(30).Equal(asset.RealizedProfit))
	})

	t.Run("missing record with positive amount creates position", func(t *testing.T) {
		p := NewPortfolio(uuid.New(), "test")

		p.ApplyAssetUpdate("ADA", ClassCrypto, decimal.NewFromInt(50), false, false)

		asset, ok := p.FindAsset("ADA", ClassCrypto)
		require.True(t, ok)
		assert.True(t, decimal.NewFromInt(50).Equal(asset.TotalInvested))
		assert.True(t, asset.RealizedProfit.IsZero())
	})

	t.Run("missing record with negative amount books realized profit", func(t *testing.T) {
		p := NewPortfolio(uuid.New(), "test")

		p.ApplyAssetUpdate("ADA", ClassCrypto, decimal.NewFromInt(-50), false, false)

		asset, ok := p.FindAsset("ADA", ClassCrypto)
		require.True(t, ok)
		assert.True(t, asset.TotalInvested.IsZero())
		assert.True(t, decimal.NewFromInt(50).Equal(asset.RealizedProfit))
	})
}

func TestPortfolio_Totals(t *testing.T) {
	catalog := DefaultCatalog()
	p := NewPortfolio(uuid.New(), "test")
	require.NoError(t, p.Apply(newTx(TypeIngreso, 1000, ""), catalog))
	require.NoError(t, p.Apply(newTx(TypeCompra, 300, "BTC"), catalog))
	require.NoError(t, p.Apply(newTx(TypeCompra, 200, "AAPL"), catalog))
	require.NoError(t, p.Apply(newTx(TypeInteres, 10, ""), catalog))
	require.NoError(t, p.Apply(newTx(TypeInteres, 15, ""), catalog))
	require.NoError(t, p.Apply(newTx(TypeDividendo, 7, "AAPL"), catalog))

	assert.True(t, decimal.NewFromInt(300).Equal(p.InvestedIn(ClassCrypto)))
	assert.True(t, decimal.NewFromInt(200).Equal(p.InvestedIn(ClassStock)))
	assert.True(t, decimal.NewFromInt(25).Equal(p.TotalByType(TypeInteres)))
	assert.True(t, decimal.NewFromInt(7).Equal(p.TotalByType(TypeDividendo)))
	assert.True(t, decimal.NewFromInt(532).Equal(p.SavingsAccount))
}
