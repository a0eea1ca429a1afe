// Package models defines data structures for Folio
package models

// Trade is an immutable buy/sell transaction record. Shares is signed:
// positive = buy, negative = sell. Date is normalized to YYYY-MM-DD so
// lexical comparison matches chronological comparison. Trades are created
// only by the ingest validator and never mutated afterwards.
type Trade struct {
	Symbol string  `json:"symbol"`
	Shares float64 `json:"shares"`
	Price  float64 `json:"price"`
	Date   string  `json:"date"`
}

// IsBuy reports whether the trade adds to a position.
func (t Trade) IsBuy() bool {
	return t.Shares > 0
}

// IsSell reports whether the trade reduces a position.
func (t Trade) IsSell() bool {
	return t.Shares < 0
}
