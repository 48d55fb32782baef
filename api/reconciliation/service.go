package reconciliation

import (
	"context"
	"sync"
	"time"

	"ConciliacaoFornecedores/api/reconciliation/engine"
	"ConciliacaoFornecedores/api/reconciliation/export"
	"ConciliacaoFornecedores/api/reconciliation/importer"
	"ConciliacaoFornecedores/api/reconciliation/store"
	"ConciliacaoFornecedores/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	defaultRunner   *Runner
	defaultRunnerMu sync.RWMutex
)

// SetDefaultRunner publishes the runner the scheduler and the ops
// surface share. NewService calls it; tests may swap in their own.
func SetDefaultRunner(r *Runner) {
	defaultRunnerMu.Lock()
	defer defaultRunnerMu.Unlock()
	defaultRunner = r
}

// DefaultRunner returns the shared runner, or nil before the recon
// service has started.
func DefaultRunner() *Runner {
	defaultRunnerMu.RLock()
	defer defaultRunnerMu.RUnlock()
	return defaultRunner
}

// Service owns the Runner and keeps the schema in shape. Runs are
// triggered by the cron service and the ops surface, never by Start.
type Service struct {
	runner *Runner
	store  *store.Store
}

// NewService assembles the whole pipeline around one pgx pool. The
// config map comes straight from services.yaml.
func NewService(pool *pgxpool.Pool, cfg map[string]interface{}) *Service {
	inbox, _ := cfg["inbox_dir"].(string)
	if inbox == "" {
		inbox = config.DefaultInboxDir
	}
	results, _ := cfg["results_dir"].(string)
	if results == "" {
		results = config.DefaultResultsDir
	}
	tolerance := config.DefaultTolerancePercent
	switch v := cfg["tolerance_percent"].(type) {
	case float64:
		if v > 0 {
			tolerance = v
		}
	case int:
		if v > 0 {
			tolerance = float64(v)
		}
	}

	st := store.New(pool)
	runner := NewRunner(RunnerConfig{
		Store:    st,
		Importer: importer.New(st, config.AdvanceDocumentTypes),
		Engine:   engine.New(st, tolerance, config.MaxDetailLines),
		Exporter: export.New(st, results, tolerance),
		InboxDir: inbox,
	})
	SetDefaultRunner(runner)
	return &Service{runner: runner, store: st}
}

func (s *Service) Name() string { return "recon" }

// Start ensures the staging and result tables exist. It does not kick
// off a run; scheduling is the cron service's business.
func (s *Service) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return s.store.Migrate(ctx)
}

func (s *Service) Stop() error { return nil }

// Runner exposes the service's runner for direct wiring.
func (s *Service) Runner() *Runner { return s.runner }
