package models

import "time"

// ImportMode values accepted by the trade import operations.
const (
	ImportModeReplace = "replace"
	ImportModeAppend  = "append"
)

// TradeRecord wraps a Trade for persistence. Seq is a monotonically
// increasing sequence assigned at insert so reads restore insertion order,
// which same-date trade replay depends on.
type TradeRecord struct {
	Seq      uint64    `json:"seq"`
	Trade    Trade     `json:"trade"`
	ImportID string    `json:"import_id"`
	AddedAt  time.Time `json:"added_at"`
}

// ImportRecord summarizes one accepted import batch. Rejected batches are
// not recorded; nothing from them is stored.
type ImportRecord struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename,omitempty"`
	Source     string    `json:"source"` // api, cli, mcp
	Mode       string    `json:"mode"`   // replace, append
	TradeCount int       `json:"trade_count"`
	ImportedAt time.Time `json:"imported_at"`
}
