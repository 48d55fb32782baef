package serviceiface

// Service is the unit managed by the app manager. The reconciler ships
// four of them: logger, recon, cron and ops. Start must not block;
// long-running work belongs in goroutines owned by the service.
type Service interface {
	Name() string
	Start() error
	Stop() error
}
