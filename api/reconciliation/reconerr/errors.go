// Package reconerr defines the error taxonomy of the reconciliation
// pipeline. Callers classify failures with errors.As; each type keeps
// enough context to report a per-source or per-phase outcome.
package reconerr

import (
	"fmt"

	"ConciliacaoFornecedores/api/constants"
)

// FormatError reports an unrecognized file or required columns that
// stayed unresolved after every mapping strategy ran.
type FormatError struct {
	File    string
	Missing []string
	Reason  string
}

func (e *FormatError) Error() string {
	if len(e.Missing) > 0 {
		return constants.FormatError(constants.ErrMissingColumns, e.File, e.Missing)
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Reason)
	}
	return constants.FormatError(constants.ErrUnknownSourceFile, e.File)
}

// MappingError reports a fuzzy header resolution that failed in a way
// automatic recovery cannot fix, e.g. two candidates scoring within the
// ambiguity band.
type MappingError struct {
	File       string
	Column     string
	Candidates []string
}

func (e *MappingError) Error() string {
	if len(e.Candidates) > 0 {
		return constants.FormatError(constants.ErrAmbiguousHeader, e.Column) +
			fmt.Sprintf(" (candidates: %v, file: %s)", e.Candidates, e.File)
	}
	return constants.FormatColumnError(e.File, e.Column)
}

// ImportError reports an I/O or structural parse failure on a source
// file. The wrapped error carries the reader's detail.
type ImportError struct {
	File string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: %v", constants.FormatError(constants.ErrFileParseFailed, e.File), e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ReconciliationError reports an invariant violation inside the
// matcher. It always aborts and rolls back the whole pass.
type ReconciliationError struct {
	Stage string
	Err   error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed during %s: %v", e.Stage, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }

// ExportError reports a workbook that failed the post-write structural
// check, or could not be written at all. A file behind an ExportError
// must be treated as garbage.
type ExportError struct {
	Path     string
	Problems []string
	Err      error
}

func (e *ExportError) Error() string {
	if len(e.Problems) > 0 {
		return fmt.Sprintf("workbook %s failed validation: %v", e.Path, e.Problems)
	}
	return fmt.Sprintf("%s: %v", constants.FormatError(constants.ErrWorkbookWrite, e.Path), e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// UnmappedError wraps anything the taxonomy does not classify. Seeing
// one in a run report means a classification is missing upstream.
type UnmappedError struct {
	Err error
}

func (e *UnmappedError) Error() string {
	return fmt.Sprintf("unmapped failure: %v", e.Err)
}

func (e *UnmappedError) Unwrap() error { return e.Err }

// Wrap classifies err into the taxonomy. Errors that already belong to
// it pass through; everything else becomes an UnmappedError.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *FormatError, *MappingError, *ImportError, *ReconciliationError, *ExportError, *UnmappedError:
		return err
	}
	return &UnmappedError{Err: err}
}
