package refdata

// builtinEntries is the static quote set shipped with the binary. It covers
// the symbols the sample document uses plus a spread of large caps so a
// fresh install produces sensible sector breakdowns without a quote file.
// Prices are fixed fixtures, not market truth.
var builtinEntries = []Entry{
	{Symbol: "AAPL", Price: 178.25, Sector: "Technology"},
	{Symbol: "MSFT", Price: 415.10, Sector: "Technology"},
	{Symbol: "NVDA", Price: 885.20, Sector: "Technology"},
	{Symbol: "GOOGL", Price: 155.80, Sector: "Communication Services"},
	{Symbol: "META", Price: 478.20, Sector: "Communication Services"},
	{Symbol: "DIS", Price: 111.20, Sector: "Communication Services"},
	{Symbol: "AMZN", Price: 182.40, Sector: "Consumer Cyclical"},
	{Symbol: "TSLA", Price: 195.30, Sector: "Consumer Cyclical"},
	{Symbol: "BRK&B", Price: 408.70, Sector: "Financial Services"},
	{Symbol: "JPM", Price: 192.65, Sector: "Financial Services"},
	{Symbol: "V", Price: 276.95, Sector: "Financial Services"},
	{Symbol: "JNJ", Price: 152.30, Sector: "Healthcare"},
	{Symbol: "UNH", Price: 490.55, Sector: "Healthcare"},
	{Symbol: "XOM", Price: 113.45, Sector: "Energy"},
	{Symbol: "CVX", Price: 155.90, Sector: "Energy"},
	{Symbol: "KO", Price: 60.15, Sector: "Consumer Defensive"},
	{Symbol: "PG", Price: 165.40, Sector: "Consumer Defensive"},
	{Symbol: "BA", Price: 181.65, Sector: "Industrials"},
}

// BuiltinTable returns a table seeded with the static quote set.
func BuiltinTable(opts ...TableOption) *Table {
	t := NewTable(opts...)
	t.mu.Lock()
	for _, e := range builtinEntries {
		t.entries[e.Symbol] = e
	}
	t.source = "builtin"
	t.mu.Unlock()
	return t
}
