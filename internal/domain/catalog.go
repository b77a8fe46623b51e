package domain

import "sort"

// CatalogEntry describes one known symbol with its display metadata.
type CatalogEntry struct {
	Symbol  string
	Name    string
	IconURL string
}

// Catalog holds the static reference lists of known crypto and stock
// symbols. It classifies an asset symbol into its class and backs
// the catalog endpoints; it carries no correctness-critical state.
type Catalog struct {
	crypto map[string]CatalogEntry
	stock  map[string]CatalogEntry
}

// NewCatalog builds a catalog from explicit entry lists.
func NewCatalog(crypto, stock []CatalogEntry) *Catalog {
	c := &Catalog{
		crypto: make(map[string]CatalogEntry, len(crypto)),
		stock:  make(map[string]CatalogEntry, len(stock)),
	}
	for _, e := range crypto {
		c.crypto[e.Symbol] = e
	}
	for _, e := range stock {
		c.stock[e.Symbol] = e
	}
	return c
}

// DefaultCatalog returns the catalog shipped with the service.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultCryptoEntries, defaultStockEntries)
}

// Classify resolves a symbol into its asset class. Unknown symbols
// return ErrUnknownSymbol so callers reject them before any ledger
// state is touched.
func (c *Catalog) Classify(symbol string) (AssetClass, error) {
	if _, ok := c.crypto[symbol]; ok {
		return ClassCrypto, nil
	}
	if _, ok := c.stock[symbol]; ok {
		return ClassStock, nil
	}
	return "", ErrUnknownSymbol
}

// Entries returns the catalog entries of one class sorted by name.
func (c *Catalog) Entries(class AssetClass) []CatalogEntry {
	var src map[string]CatalogEntry
	switch class {
	case ClassCrypto:
		src = c.crypto
	case ClassStock:
		src = c.stock
	default:
		return nil
	}

	out := make([]CatalogEntry, 0, len(src))
	for _, e := range src {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var defaultCryptoEntries = []CatalogEntry{
	{Symbol: "BTC", Name: "Bitcoin", IconURL: "https://assets.coincap.io/assets/icons/btc@2x.png"},
	{Symbol: "ETH", Name: "Ethereum", IconURL: "https://assets.coincap.io/assets/icons/eth@2x.png"},
	{Symbol: "ADA", Name: "Cardano", IconURL: "https://assets.coincap.io/assets/icons/ada@2x.png"},
	{Symbol: "SOL", Name: "Solana", IconURL: "https://assets.coincap.io/assets/icons/sol@2x.png"},
	{Symbol: "DOT", Name: "Polkadot", IconURL: "https://assets.coincap.io/assets/icons/dot@2x.png"},
	{Symbol: "XRP", Name: "XRP", IconURL: "https://assets.coincap.io/assets/icons/xrp@2x.png"},
	{Symbol: "LTC", Name: "Litecoin", IconURL: "https://assets.coincap.io/assets/icons/ltc@2x.png"},
	{Symbol: "LINK", Name: "Chainlink", IconURL: "https://assets.coincap.io/assets/icons/link@2x.png"},
	{Symbol: "DOGE", Name: "Dogecoin", IconURL: "https://assets.coincap.io/assets/icons/doge@2x.png"},
	{Symbol: "MATIC", Name: "Polygon", IconURL: "https://assets.coincap.io/assets/icons/matic@2x.png"},
}

var defaultStockEntries = []CatalogEntry{
	{Symbol: "AAPL", Name: "Apple Inc.", IconURL: "https://logo.clearbit.com/apple.com"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", IconURL: "https://logo.clearbit.com/microsoft.com"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", IconURL: "https://logo.clearbit.com/abc.xyz"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", IconURL: "https://logo.clearbit.com/amazon.com"},
	{Symbol: "TSLA", Name: "Tesla Inc.", IconURL: "https://logo.clearbit.com/tesla.com"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", IconURL: "https://logo.clearbit.com/nvidia.com"},
	{Symbol: "META", Name: "Meta Platforms Inc.", IconURL: "https://logo.clearbit.com/meta.com"},
	{Symbol: "SAN", Name: "Banco Santander", IconURL: "https://logo.clearbit.com/santander.com"},
	{Symbol: "BBVA", Name: "BBVA", IconURL: "https://logo.clearbit.com/bbva.com"},
	{Symbol: "ITX", Name: "Inditex", IconURL: "https://logo.clearbit.com/inditex.com"},
	{Symbol: "IBE", Name: "Iberdrola", IconURL: "https://logo.clearbit.com/iberdrola.com"},
	{Symbol: "TEF", Name: "Telefónica", IconURL: "https://logo.clearbit.com/telefonica.com"},
}
