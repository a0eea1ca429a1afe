package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foliotrack/folio/internal/models"
)

// --- Trade book handlers ---

// handleTradesImport handles POST /api/trades/import?mode=replace|append.
// The batch is all-or-nothing: any validation error rejects the whole
// document with 422 and stores nothing.
func (s *Server) handleTradesImport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	ctx := r.Context()

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = models.ImportModeReplace
	}
	if mode != models.ImportModeReplace && mode != models.ImportModeAppend {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid mode '%s' — use replace or append", mode))
		return
	}

	data, filename, ok := s.readCSVBody(w, r)
	if !ok {
		return
	}

	result := s.app.IngestService.ParseCSV(bytes.NewReader(data))
	if !result.IsValid() {
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"valid":       false,
			"trade_count": len(result.Trades),
			"errors":      result.Errors,
			"error_count": len(result.Errors),
		})
		return
	}

	store := s.app.Storage.TradeStore()
	importID := uuid.New().String()

	var err error
	if mode == models.ImportModeReplace {
		err = store.ReplaceTrades(ctx, result.Trades, importID)
	} else {
		err = store.AppendTrades(ctx, result.Trades, importID)
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to store trades: %v", err))
		return
	}

	// Archive the accepted document. A failed archive never fails the import.
	archiveKey := fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102-150405"), importID[:8])
	archived, archiveErr := s.app.Storage.ArchiveCSV(archiveKey, data)
	if archiveErr != nil {
		s.logger.Warn().Err(archiveErr).Msg("Upload archive failed")
		archived = ""
	}

	rec := &models.ImportRecord{
		ID:         importID,
		Filename:   filename,
		Source:     "api",
		Mode:       mode,
		TradeCount: len(result.Trades),
		ImportedAt: time.Now().UTC(),
	}
	if err := store.SaveImport(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Msg("Import record save failed")
	}

	total, err := store.CountTrades(ctx)
	if err != nil {
		total = len(result.Trades)
	}

	s.app.NotifyTradesChanged()

	s.logger.Info().
		Str("import_id", importID).
		Str("mode", mode).
		Int("trades", len(result.Trades)).
		Int("book_total", total).
		Msg("Trade import accepted")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valid":       true,
		"import_id":   importID,
		"mode":        mode,
		"imported":    len(result.Trades),
		"total":       total,
		"archived_as": archived,
	})
}

// handleTradesValidate handles POST /api/trades/validate. Dry run: the full
// validation result comes back with 200 whether or not the document is
// clean, and nothing is stored.
func (s *Server) handleTradesValidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	data, _, ok := s.readCSVBody(w, r)
	if !ok {
		return
	}

	result := s.app.IngestService.ParseCSV(bytes.NewReader(data))
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valid":       result.IsValid(),
		"trade_count": len(result.Trades),
		"errors":      result.Errors,
		"error_count": len(result.Errors),
	})
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		trades, err := s.app.Storage.TradeStore().ListTrades(ctx)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list trades: %v", err))
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"trades": trades,
			"count":  len(trades),
		})

	case http.MethodDelete:
		cleared, err := s.app.Storage.TradeStore().ClearTrades(ctx)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to clear trades: %v", err))
			return
		}
		s.app.NotifyTradesChanged()
		s.logger.Info().Int("cleared", cleared).Msg("Trade book cleared")
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"cleared": cleared,
		})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

func (s *Server) handleImports(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	imports, err := s.app.Storage.TradeStore().ListImports(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list imports: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"imports": imports,
		"count":   len(imports),
	})
}

// --- Portfolio handlers ---

func (s *Server) handlePortfolioHoldings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	holdings, err := s.app.PortfolioService.Holdings(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Holdings error: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"holdings": holdings,
		"count":    len(holdings),
	})
}

func (s *Server) handlePortfolioMetrics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	metrics, err := s.app.PortfolioService.Metrics(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Metrics error: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, metrics)
}

func (s *Server) handlePortfolioHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	history, err := s.app.PortfolioService.History(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("History error: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"history": history,
		"count":   len(history),
	})
}

// handlePortfolioOverview serves the combined dashboard view. With
// ?cached=true the persisted snapshot is served when one exists, so the
// first render after a restart never waits on a full recompute.
func (s *Server) handlePortfolioOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	ctx := r.Context()

	if r.URL.Query().Get("cached") == "true" {
		snap, err := s.app.Storage.TradeStore().GetSnapshot(ctx)
		if err == nil && snap != nil {
			w.Header().Set("X-Folio-Cached", "true")
			WriteJSON(w, http.StatusOK, snap)
			return
		}
	}

	view, err := s.app.PortfolioService.Overview(ctx)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Overview error: %v", err))
		return
	}
	w.Header().Set("X-Folio-Cached", "false")
	WriteJSON(w, http.StatusOK, view)
}

// --- Sample document ---

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sample_trades.csv"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, s.app.IngestService.SampleCSV())
}

// --- Upload helpers ---

// readCSVBody extracts the CSV document from an import/validate request. It
// accepts a raw text/csv body or a multipart form with a "file" field, and
// enforces the configured upload cap. On failure it writes the error
// response itself and returns ok=false.
func (s *Server) readCSVBody(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	maxBytes := s.app.Config.Ingest.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 2 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			if maxBytesExceeded(err) {
				WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds %d byte limit", maxBytes))
				return nil, "", false
			}
			WriteError(w, http.StatusBadRequest, "Multipart upload must include a 'file' field")
			return nil, "", false
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read upload: %v", err))
			return nil, "", false
		}
		return data, header.Filename, true
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		if maxBytesExceeded(err) {
			WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds %d byte limit", maxBytes))
			return nil, "", false
		}
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read request body: %v", err))
		return nil, "", false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		WriteError(w, http.StatusBadRequest, "Request body is empty — upload a CSV document")
		return nil, "", false
	}
	return data, "", true
}

func maxBytesExceeded(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
