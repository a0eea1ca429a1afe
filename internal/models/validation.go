package models

import "fmt"

// ValidationError describes one failed field rule on one input row. Row is
// 1-based counting from the first data row; row 0 with field "file" means
// the document itself could not be parsed.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("row %d, %s: %s", e.Row, e.Field, e.Message)
}

// ValidationResult carries every trade that parsed cleanly plus every field
// error found. Rows with errors contribute no Trade; trade order follows
// input row order. Whether to accept partial data is the caller's policy.
type ValidationResult struct {
	Trades []Trade           `json:"trades"`
	Errors []ValidationError `json:"errors"`
}

// IsValid reports whether the batch produced no errors at all.
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ErrorsForRow returns the errors attributed to one row number.
func (r ValidationResult) ErrorsForRow(row int) []ValidationError {
	var out []ValidationError
	for _, e := range r.Errors {
		if e.Row == row {
			out = append(out, e)
		}
	}
	return out
}
