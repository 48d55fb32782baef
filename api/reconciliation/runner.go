package reconciliation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/engine"
	"ConciliacaoFornecedores/api/reconciliation/export"
	"ConciliacaoFornecedores/api/reconciliation/importer"
	"ConciliacaoFornecedores/api/reconciliation/reconerr"
	"ConciliacaoFornecedores/api/reconciliation/store"
	"ConciliacaoFornecedores/internal/checksum"
	"ConciliacaoFornecedores/internal/config"
	"ConciliacaoFornecedores/internal/logger"

	"github.com/google/uuid"
)

var (
	// ErrBusy rejects a run started while another is still going.
	ErrBusy = errors.New(constants.ErrRunInProgress)
	// ErrNoSources aborts a run in which every import failed.
	ErrNoSources = errors.New(constants.ErrNoSourcesImported)
)

// RunnerConfig wires a Runner. Provider and Notifier may be left nil;
// the inbox scanner and the audit-log notifier take their place.
type RunnerConfig struct {
	Store    *store.Store
	Importer *importer.Importer
	Engine   *engine.Engine
	Exporter *export.Exporter
	Provider SourceProvider
	Notifier Notifier
	InboxDir string
	TimeZone string
}

// Runner executes one complete batch: resolve and import the four
// sources, reconcile both passes, export the workbook and journal the
// outcome. Only one run may be in flight per process; the scheduler
// and the ops surface share the same Runner.
type Runner struct {
	store    *store.Store
	importer *importer.Importer
	engine   *engine.Engine
	exporter *export.Exporter
	provider SourceProvider
	notifier Notifier
	loc      *time.Location

	mu      sync.Mutex
	running bool
}

func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.Provider == nil {
		dir := cfg.InboxDir
		if dir == "" {
			dir = config.DefaultInboxDir
		}
		cfg.Provider = InboxProvider{Dir: dir}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = LogNotifier{}
	}
	tz := cfg.TimeZone
	if tz == "" {
		tz = config.DefaultTimeZone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}
	return &Runner{
		store:    cfg.Store,
		importer: cfg.Importer,
		engine:   cfg.Engine,
		exporter: cfg.Exporter,
		provider: cfg.Provider,
		notifier: cfg.Notifier,
		loc:      loc,
	}
}

// Run executes the batch for the current reference window. Import
// failures are isolated per source; the run only aborts when every
// source fails. The returned report is also journaled, so a caller
// that ignores it loses nothing.
func (r *Runner) Run(ctx context.Context) (*RunReport, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, ErrBusy
	}
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	now := time.Now().In(r.loc)
	start, end := ReferenceWindow(now)
	report := &RunReport{
		RunID:          uuid.New(),
		Status:         constants.RunStatusRunning,
		ReferenceStart: start,
		ReferenceEnd:   end,
	}
	run := store.Run{
		ID:             report.RunID,
		StartedAt:      now,
		ReferenceStart: start,
		ReferenceEnd:   end,
		Status:         constants.RunStatusRunning,
	}
	if err := r.store.OpenRun(ctx, run); err != nil {
		return nil, reconerr.Wrap(err)
	}
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf(constants.MsgReferenceWindow,
			start.Format(constants.DateFormat), end.Format(constants.DateFormat)))
	}

	succeeded := r.importSources(ctx, report)
	if succeeded == 0 {
		err := &reconerr.ReconciliationError{Stage: constants.StepImport, Err: ErrNoSources}
		r.finish(ctx, report, constants.StepImport, err)
		return report, err
	}
	report.Steps = append(report.Steps, StepOutcome{
		Step:    constants.StepImport,
		Status:  constants.StepStatusOK,
		Message: fmt.Sprintf("%d of %d sources imported", succeeded, len(report.Sources)),
	})

	summary, err := r.engine.Reconcile(ctx, report.RunID, start, end)
	if err != nil {
		r.finish(ctx, report, constants.StepReconcile, err)
		return report, err
	}
	report.Summary = summary
	report.Steps = append(report.Steps, StepOutcome{Step: constants.StepReconcile, Status: constants.StepStatusOK})

	path, err := r.exporter.Export(ctx, run)
	if err != nil {
		r.finish(ctx, report, constants.StepExport, err)
		return report, err
	}
	report.WorkbookPath = path
	// The digest lets the consumer verify the file it picks up is the
	// one this run validated. A hashing failure is not worth failing a
	// finished run over.
	if digest, err := checksum.FileDigest(path); err == nil {
		report.WorkbookDigest = digest
	} else if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Could not hash workbook %s: %v", path, err))
	}
	report.Steps = append(report.Steps, StepOutcome{
		Step:    constants.StepExport,
		Status:  constants.StepStatusOK,
		Message: filepath.Base(path),
	})

	r.finish(ctx, report, "", nil)
	return report, nil
}

// Busy reports whether a run is in flight right now.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Runner) importSources(ctx context.Context, report *RunReport) int {
	succeeded := 0
	for _, d := range importer.Manifest() {
		outcome := SourceOutcome{Source: string(d.Source)}
		path, err := r.provider.Fetch(ctx, d)
		if err == nil {
			outcome.File = filepath.Base(path)
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit(fmt.Sprintf(constants.MsgSourceFileChosen, d.Source, outcome.File))
			}
			outcome.Rows, err = r.importer.Import(ctx, path, d)
		}
		if err != nil {
			outcome.Status = constants.StepStatusFailed
			outcome.Message = err.Error()
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit(fmt.Sprintf(constants.MsgImportRefused, d.Source, err))
			}
		} else {
			outcome.Status = constants.StepStatusOK
			succeeded++
		}
		report.Sources = append(report.Sources, outcome)
	}
	return succeeded
}

// finish closes the journal row, logs the verdict and notifies. It
// runs on a detached context so a canceled run still gets journaled.
func (r *Runner) finish(ctx context.Context, report *RunReport, failedStep string, runErr error) {
	if runErr != nil {
		report.Status = constants.RunStatusFailed
		report.Steps = append(report.Steps, StepOutcome{
			Step:    failedStep,
			Status:  constants.StepStatusFailed,
			Message: runErr.Error(),
		})
	} else {
		report.Status = constants.RunStatusSuccess
	}
	if logger.GlobalLogger != nil {
		report.LogPath = logger.GlobalLogger.CurrentLogPath()
	}

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	detail, err := json.Marshal(detailPayload{Sources: report.Sources, Steps: report.Steps})
	if err != nil {
		detail = []byte(fmt.Sprintf(`{"marshal_error":%q}`, err))
	}
	if err := r.store.CloseRun(closeCtx, report.RunID, report.Status, string(detail)); err != nil {
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Could not close run journal %s: %v", report.RunID, err))
		}
	}
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf(constants.MsgRunFinished, report.RunID, report.Status))
	}
	if runErr != nil {
		_ = r.notifier.NotifyFailure(closeCtx, *report)
	} else {
		_ = r.notifier.NotifySuccess(closeCtx, *report)
	}
}
