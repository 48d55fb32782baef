// Package importer stages the four bookkeeping exports: it reads a
// source file, resolves its headers against the target schema, cleans
// the mapped records and replaces the staging table's rows, all as one
// unit per source.
package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/cleaning"
	"ConciliacaoFornecedores/api/reconciliation/reconerr"
	"ConciliacaoFornecedores/api/reconciliation/store"
	"ConciliacaoFornecedores/internal/logger"
)

// Importer reads, maps, cleans and stages one source file per call.
type Importer struct {
	store        *store.Store
	advanceTypes []string
}

func New(st *store.Store, advanceTypes []string) *Importer {
	return &Importer{store: st, advanceTypes: advanceTypes}
}

// Import replaces the staging table of the descriptor's source with
// the cleaned rows of the file. The returned count is the number of
// staged rows; errors are typed so the runner can report per source.
func (im *Importer) Import(ctx context.Context, path string, d Descriptor) (int64, error) {
	sheet, err := ReadFile(path, d.HeaderRow)
	if err != nil {
		return 0, err
	}
	res, err := Resolve(sheet.Headers, d.Schema)
	if err != nil {
		return 0, stampFile(err, filepath.Base(path))
	}
	records := buildRecords(sheet, res)

	var (
		columns []string
		values  [][]interface{}
	)
	switch d.Source {
	case SourceLedger:
		rows := cleaning.CleanLedger(records, im.advanceTypes)
		columns, values = store.LedgerColumns(), store.LedgerCopyRows(rows)
	case SourceTrialBalance:
		rows := cleaning.CleanTrialBalance(records)
		columns, values = store.TrialBalanceColumns(), store.BalanceCopyRows(rows)
	case SourceItems:
		rows := cleaning.CleanAccountItems(records)
		columns, values = store.ItemColumns(), store.ItemCopyRows(rows)
	case SourceAdvances:
		rows := cleaning.CleanAdvances(records)
		columns, values = store.AdvanceColumns(), store.BalanceCopyRows(rows)
	default:
		return 0, &reconerr.FormatError{
			File:   filepath.Base(path),
			Reason: fmt.Sprintf("no staging route for source %q", d.Source),
		}
	}

	n, err := im.store.ReplaceSourceRows(ctx, d.Table, columns, values)
	if err != nil {
		return 0, &reconerr.ImportError{File: filepath.Base(path), Err: err}
	}
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(constants.FormatError(constants.MsgImportAccepted,
			n, filepath.Base(path), d.Table, len(records)-len(values)))
	}
	return n, nil
}

// buildRecords projects each data row onto the canonical column names.
// Cells past the row's end read as empty; the cleaner handles them.
func buildRecords(sheet *Sheet, res Resolution) []cleaning.Record {
	records := make([]cleaning.Record, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rec := make(cleaning.Record, len(res.Columns))
		for target, idx := range res.Columns {
			if idx < len(row) {
				rec[target] = row[idx]
			} else {
				rec[target] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// stampFile fills the file name into resolution errors, which are
// produced by a pure function that never sees the path.
func stampFile(err error, file string) error {
	var fe *reconerr.FormatError
	if errors.As(err, &fe) && fe.File == "" {
		fe.File = file
		return err
	}
	var me *reconerr.MappingError
	if errors.As(err, &me) && me.File == "" {
		me.File = file
	}
	return err
}
