package ingest

import (
	"io"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/models"
)

// Service implements IngestService
type Service struct {
	logger *common.Logger
}

// NewService creates a new ingest service
func NewService(logger *common.Logger) *Service {
	return &Service{logger: logger}
}

// ParseCSV validates an entire CSV document.
func (s *Service) ParseCSV(r io.Reader) models.ValidationResult {
	result := ParseCSV(r)
	s.logger.Info().
		Int("trades", len(result.Trades)).
		Int("errors", len(result.Errors)).
		Bool("valid", result.IsValid()).
		Msg("CSV document validated")
	return result
}

// ValidateRows validates pre-split rows.
func (s *Service) ValidateRows(rows []map[string]string) models.ValidationResult {
	return ValidateRows(rows)
}

// SampleCSV returns the canonical example document.
func (s *Service) SampleCSV() string {
	return SampleCSV()
}
