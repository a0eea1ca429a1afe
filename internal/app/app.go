// Package app wires configuration, storage, reference data, and services
// into the shared core used by cmd/folio-server and cmd/folio-mcp.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/interfaces"
	"github.com/foliotrack/folio/internal/refdata"
	"github.com/foliotrack/folio/internal/scheduler"
	"github.com/foliotrack/folio/internal/services/ingest"
	"github.com/foliotrack/folio/internal/services/portfolio"
	"github.com/foliotrack/folio/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	Refdata          *refdata.Table
	IngestService    interfaces.IngestService
	PortfolioService interfaces.PortfolioService
	Scheduler        *scheduler.Scheduler
	StartupTime      time.Time

	autosave   *debouncer
	warmCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, reference data, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	// Get binary directory for self-contained operation
	binDir := getBinaryDir()

	// Load configuration - check provided path, FOLIO_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative data paths to the binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}
	if config.Refdata.Path != "" && !filepath.IsAbs(config.Refdata.Path) {
		config.Refdata.Path = filepath.Join(binDir, config.Refdata.Path)
	}

	// Initialize logger
	logger := common.NewLogger(config.Logging.Level)

	// Initialize storage
	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Reference data: builtin table, overlaid by the quote file when configured
	table := refdata.BuiltinTable(refdata.WithLogger(logger))
	if config.Refdata.Path != "" {
		if err := table.ReloadFromFile(config.Refdata.Path); err != nil {
			logger.Warn().
				Err(err).
				Str("path", config.Refdata.Path).
				Msg("Quote file load failed - using builtin reference data")
		}
	}

	// Initialize services
	ingestService := ingest.NewService(logger)
	portfolioService := portfolio.NewService(storageManager, table, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		Refdata:          table,
		IngestService:    ingestService,
		PortfolioService: portfolioService,
		Scheduler:        scheduler.New(logger),
		StartupTime:      startupStart,
	}

	a.autosave = newDebouncer(
		config.Snapshot.GetQuietWindow(),
		config.Snapshot.GetMaxWait(),
		a.saveSnapshot,
	)

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
// Shutdown order: cancel warm boot, stop scheduler, flush autosave, close storage.
func (a *App) Close() {
	if a.warmCancel != nil {
		a.warmCancel()
		a.warmCancel = nil
	}
	if a.Scheduler != nil {
		a.Scheduler.Stop()
		a.Scheduler = nil
	}
	if a.autosave != nil {
		a.autosave.Stop()
		a.autosave = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}

// NotifyTradesChanged marks the snapshot stale. The debounced autosave
// recomputes it once the import burst settles.
func (a *App) NotifyTradesChanged() {
	if a.autosave != nil {
		a.autosave.Trigger()
	}
}

// StartWarmSnapshot launches the background snapshot warm-up goroutine.
func (a *App) StartWarmSnapshot() {
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 5*time.Minute)
	a.warmCancel = warmCancel
	go func() {
		defer warmCancel()
		warmSnapshot(warmCtx, a.PortfolioService, a.Storage, a.Logger)
	}()
}

// StartScheduler registers background jobs and starts the cron loop.
// With no quote file configured there is nothing to schedule.
func (a *App) StartScheduler() {
	if a.Config.Refdata.Path == "" || a.Config.Refdata.ReloadSchedule == "" {
		a.Logger.Debug().Msg("Scheduler: no quote file configured, not starting")
		return
	}

	job := scheduler.NewRefdataReloadJob(a.Refdata, a.Config.Refdata.Path, a.NotifyTradesChanged, a.Logger)
	if err := a.Scheduler.AddJob(a.Config.Refdata.ReloadSchedule, job); err != nil {
		a.Logger.Warn().
			Err(err).
			Str("schedule", a.Config.Refdata.ReloadSchedule).
			Msg("Scheduler: bad reload schedule, job not registered")
		return
	}
	a.Scheduler.Start()
}

// saveSnapshot recomputes and persists the portfolio view. Runs on the
// debouncer goroutine after trade book changes settle.
func (a *App) saveSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	view, err := a.PortfolioService.Overview(ctx)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("Snapshot autosave: aggregation failed")
		return
	}
	if err := a.Storage.TradeStore().SaveSnapshot(ctx, view); err != nil {
		a.Logger.Warn().Err(err).Msg("Snapshot autosave: save failed")
		return
	}

	a.Logger.Debug().
		Int("trades", view.TradeCount).
		Int("holdings", len(view.Holdings)).
		Msg("Snapshot autosaved")
}
