// Package ops serves the read-only status surface: process health, the
// latest run journal entry and the current result rows.
package ops

import (
	"encoding/json"
	"net/http"
	"time"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation"
	"ConciliacaoFornecedores/api/reconciliation/store"
	"ConciliacaoFornecedores/api/utils"
	"ConciliacaoFornecedores/internal/config"

	"github.com/gorilla/mux"
)

const (
	defaultResultLimit = 100
	maxResultLimit     = 1000
)

type server struct {
	store *store.Store
}

// NewRouter builds the ops routes around one store.
func NewRouter(st *store.Store) *mux.Router {
	s := &server{store: st}
	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/runs/latest", s.handleLatestRun).Methods("GET")
	router.HandleFunc("/results", s.handleResults).Methods("GET")
	return router
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	running := false
	if runner := reconciliation.DefaultRunner(); runner != nil {
		running = runner.Busy()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"status":          "ok",
		"run_in_progress": running,
	})
}

func (s *server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.LatestRun(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "error": constants.ErrQueryFailed,
		})
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false, "error": constants.ErrNoDataFound,
		})
		return
	}
	// The detail column holds the serialized run report; pass it
	// through untouched when it is valid JSON.
	var detail interface{} = run.Detail
	if json.Valid([]byte(run.Detail)) {
		detail = json.RawMessage(run.Detail)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"run": map[string]interface{}{
			"run_id":          run.ID,
			"started_at":      run.StartedAt.Format(constants.DateTimeFormat),
			"finished_at":     formatNullableTime(run.FinishedAt),
			"reference_start": run.ReferenceStart.Format(constants.DateFormat),
			"reference_end":   run.ReferenceEnd.Format(constants.DateFormat),
			"status":          run.Status,
			"detail":          detail,
		},
	})
}

func (s *server) handleResults(w http.ResponseWriter, r *http.Request) {
	pass := r.URL.Query().Get("pass")
	table := config.TableResults
	if pass == "advance" {
		table = config.TableAdvanceResults
	} else {
		pass = "primary"
	}
	page, err := utils.ExtractPagination(r, defaultResultLimit, maxResultLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "error": constants.ErrInvalidRequest,
		})
		return
	}

	rows, err := s.store.Results(r.Context(), table)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "error": constants.ErrQueryFailed,
		})
		return
	}
	// Rows come back ordered by absolute difference, so the first pages
	// hold the most divergent counterparties.
	page.SetPaginationStats(len(rows))
	lo, hi := page.Bounds(len(rows))
	rows = rows[lo:hi]

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"pass":       pass,
		"count":      len(rows),
		"results":    rows,
		"pagination": page,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func formatNullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(constants.DateTimeFormat)
}
