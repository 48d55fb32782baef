package reconciliation

import (
	"time"

	"ConciliacaoFornecedores/api/reconciliation/engine"

	"github.com/google/uuid"
)

// SourceOutcome records one import attempt. A failed source never aborts
// the run on its own; the runner keeps going and records the failure here.
type SourceOutcome struct {
	Source  string `json:"source"`
	File    string `json:"file,omitempty"`
	Rows    int64  `json:"rows"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// StepOutcome records one stage of the run (import, reconcile, export).
type StepOutcome struct {
	Step    string `json:"step"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RunReport is the full account of a run: what was imported, how each
// stage ended and where the workbook landed. It is serialized into the
// run journal's detail column and handed to the notifier.
type RunReport struct {
	RunID          uuid.UUID       `json:"run_id"`
	Status         string          `json:"status"`
	ReferenceStart time.Time       `json:"reference_start"`
	ReferenceEnd   time.Time       `json:"reference_end"`
	Sources        []SourceOutcome `json:"sources"`
	Steps          []StepOutcome   `json:"steps"`
	Summary        engine.Summary  `json:"summary"`
	WorkbookPath   string          `json:"workbook_path,omitempty"`
	WorkbookDigest string          `json:"workbook_digest,omitempty"`
	LogPath        string          `json:"log_path,omitempty"`
}

// detailPayload is the slice of the report persisted in the journal.
type detailPayload struct {
	Sources []SourceOutcome `json:"sources"`
	Steps   []StepOutcome   `json:"steps"`
}
