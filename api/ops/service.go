package ops

import (
	"context"
	"log"
	"net/http"
	"time"

	"ConciliacaoFornecedores/api/reconciliation/store"
	"ConciliacaoFornecedores/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Service runs the status HTTP server.
type Service struct {
	addr   string
	store  *store.Store
	server *http.Server
}

func NewService(pool *pgxpool.Pool, cfg map[string]interface{}) *Service {
	addr, _ := cfg["addr"].(string)
	if addr == "" {
		addr = config.DefaultOpsAddr
	}
	return &Service{addr: addr, store: store.New(pool)}
}

func (s *Service) Name() string { return "ops" }

func (s *Service) Start() error {
	s.server = &http.Server{Addr: s.addr, Handler: NewRouter(s.store)}
	go func() {
		log.Printf("Ops service started on %s", s.addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Ops service failed: %v", err)
		}
	}()
	return nil
}

func (s *Service) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
