package scheduler

import (
	"github.com/foliotrack/folio/internal/common"
	"github.com/foliotrack/folio/internal/refdata"
)

// RefdataReloadJob re-reads the quote file on a schedule so price and
// sector edits show up on a running server without a restart.
type RefdataReloadJob struct {
	table    *refdata.Table
	path     string
	onReload func()
	logger   *common.Logger
}

// NewRefdataReloadJob creates a reload job for the given quote file.
// onReload runs after each successful reload (nil to skip); the app uses it
// to mark the persisted snapshot stale.
func NewRefdataReloadJob(table *refdata.Table, path string, onReload func(), logger *common.Logger) *RefdataReloadJob {
	return &RefdataReloadJob{table: table, path: path, onReload: onReload, logger: logger}
}

// Name returns the job name
func (j *RefdataReloadJob) Name() string {
	return "refdata_reload"
}

// Run reloads the quote file. A bad file keeps the current table contents.
func (j *RefdataReloadJob) Run() error {
	if err := j.table.ReloadFromFile(j.path); err != nil {
		return err
	}
	if j.onReload != nil {
		j.onReload()
	}
	return nil
}
