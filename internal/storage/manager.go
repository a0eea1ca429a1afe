// Package storage provides the top-level StorageManager that coordinates
// the 2 storage areas: the tradedb book and the file-backed import archive.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/interfaces"
	"github.com/foliotrack/folio/internal/storage/tradedb"
)

// importsDir is the data-path subdirectory holding archived uploads.
const importsDir = "imports"

// Manager implements interfaces.StorageManager using a BadgerHold trade
// book plus a plain-file archive of accepted uploads.
type Manager struct {
	trades   *tradedb.Store
	basePath string
	logger   *common.Logger
}

// NewManager creates a new StorageManager rooted at the configured data path.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	basePath := config.Storage.Path
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data path %s: %w", basePath, err)
	}

	tradeStore, err := tradedb.NewStore(logger, filepath.Join(basePath, "tradedb"))
	if err != nil {
		return nil, fmt.Errorf("failed to create trade store: %w", err)
	}

	logger.Info().
		Str("path", basePath).
		Msg("Storage manager initialized (2 areas)")

	return &Manager{
		trades:   tradeStore,
		basePath: basePath,
		logger:   logger,
	}, nil
}

func (m *Manager) TradeStore() interfaces.TradeStore {
	return m.trades
}

func (m *Manager) DataPath() string {
	return m.basePath
}

// ArchiveCSV writes an accepted upload to the imports archive atomically
// and returns the archived filename.
func (m *Manager) ArchiveCSV(key string, data []byte) (string, error) {
	dir := filepath.Join(m.basePath, importsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	name := sanitizeKey(key)
	if !strings.HasSuffix(name, ".csv") {
		name += ".csv"
	}
	target := filepath.Join(dir, name)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}

	m.logger.Debug().Str("file", name).Int("bytes", len(data)).Msg("Upload archived")
	return name, nil
}

func (m *Manager) Close() error {
	return m.trades.Close()
}

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
