package ingest

// sampleCSV is a small multi-symbol, multi-date trade set whose rows
// always validate. It exercises buys, partial sells, fractional shares and
// same-date trades across symbols.
const sampleCSV = `symbol,shares,price,date
AAPL,10,150.25,2024-01-15
MSFT,5,380.50,2024-01-22
GOOGL,8,142.75,2024-02-01
AAPL,-3,165.00,2024-02-12
NVDA,12,610.00,2024-02-12
MSFT,2.5,395.20,2024-03-01
TSLA,6,202.60,2024-03-08
GOOGL,-2,150.10,2024-03-15
AMZN,4,178.35,2024-03-15
NVDA,-5,875.40,2024-04-02
`

// SampleCSV returns the canonical example document, used by the API sample
// endpoint, the CLI, the MCP tools and the round-trip tests.
func SampleCSV() string {
	return sampleCSV
}
