// Package export builds the run workbook: six fixed sheets, styled,
// then re-opened and checked against the contract before the path is
// handed to anyone. Export failures never touch the stored results, so
// a retry re-exports without re-reconciling.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/reconerr"
	"ConciliacaoFornecedores/api/reconciliation/store"
	"ConciliacaoFornecedores/internal/config"
	"ConciliacaoFornecedores/internal/logger"
)

// Exporter renders the reconciliation results of one run.
type Exporter struct {
	store            *store.Store
	resultsDir       string
	tolerancePercent float64
}

func New(st *store.Store, resultsDir string, tolerancePercent float64) *Exporter {
	return &Exporter{store: st, resultsDir: resultsDir, tolerancePercent: tolerancePercent}
}

// FileName is the workbook name for a reference window.
func FileName(start, end time.Time) string {
	return fmt.Sprintf("%s%s_a_%s.xlsx", constants.WorkbookPrefix,
		start.Format(constants.DateFormatFile), end.Format(constants.DateFormatFile))
}

// Export writes the workbook and validates the saved file. The
// returned path is only trustworthy when err is nil.
func (ex *Exporter) Export(ctx context.Context, run store.Run) (string, error) {
	primary, err := ex.store.Results(ctx, config.TableResults)
	if err != nil {
		return "", &reconerr.ExportError{Err: err}
	}
	advances, err := ex.store.Results(ctx, config.TableAdvanceResults)
	if err != nil {
		return "", &reconerr.ExportError{Err: err}
	}
	if len(primary) == 0 && len(advances) == 0 {
		return "", &reconerr.ExportError{Problems: []string{constants.ErrNothingToExport}}
	}
	ledger, err := ex.store.LedgerDetail(ctx, run.ReferenceStart, run.ReferenceEnd)
	if err != nil {
		return "", &reconerr.ExportError{Err: err}
	}
	balance, err := ex.store.SupplierBalanceDetail(ctx)
	if err != nil {
		return "", &reconerr.ExportError{Err: err}
	}
	items, err := ex.store.ItemDetailForResults(ctx)
	if err != nil {
		return "", &reconerr.ExportError{Err: err}
	}
	meta, err := ex.metadataRows(ctx, run)
	if err != nil {
		return "", &reconerr.ExportError{Err: err}
	}

	f := excelize.NewFile()
	defer f.Close()
	styles, err := buildStyles(f)
	if err != nil {
		return "", &reconerr.ExportError{Err: err}
	}

	if err := ex.writeSummarySheet(f, styles, constants.SheetSummary, primary, true); err != nil {
		return "", err
	}
	if err := writeTable(f, styles, constants.SheetLedger, ledgerTable(ledger)); err != nil {
		return "", err
	}
	if err := writeTable(f, styles, constants.SheetTrialBalance, balanceTable(balance)); err != nil {
		return "", err
	}
	if err := writeTable(f, styles, constants.SheetItems, itemTable(items)); err != nil {
		return "", err
	}
	if err := ex.writeSummarySheet(f, styles, constants.SheetAdvances, advances, false); err != nil {
		return "", err
	}
	if err := writeTable(f, styles, constants.SheetMetadata, meta); err != nil {
		return "", err
	}

	defaultSheet := f.GetSheetName(0)
	if defaultSheet != "" && defaultSheet != constants.SheetSummary {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return "", &reconerr.ExportError{Err: err}
		}
	}
	if idx, err := f.GetSheetIndex(constants.SheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := os.MkdirAll(ex.resultsDir, 0o755); err != nil {
		return "", &reconerr.ExportError{
			Problems: []string{constants.FormatError(constants.ErrResultsDirCreate, ex.resultsDir)},
			Err:      err,
		}
	}
	path := filepath.Join(ex.resultsDir, FileName(run.ReferenceStart, run.ReferenceEnd))
	if err := f.SaveAs(path); err != nil {
		return "", &reconerr.ExportError{Path: path, Err: err}
	}
	if err := Validate(path); err != nil {
		return "", err
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(constants.FormatError(constants.MsgExportDone, path))
	}
	return path, nil
}

// writeSummarySheet renders a result table with the status-conditional
// row fills. The primary sheet additionally gets protection with only
// the Detalhes column left editable.
func (ex *Exporter) writeSummarySheet(f *excelize.File, styles *styleSet, sheet string, rows []store.ResultRow, protect bool) error {
	if err := writeTable(f, styles, sheet, summaryTable(sheet, rows)); err != nil {
		return err
	}

	for i, r := range rows {
		text, money, detail := styles.rowStyles(r.Status)
		rowNum := i + 2
		for col := 1; col <= len(sheetHeaders[sheet]); col++ {
			style := text
			if moneyColumn(sheet, col) {
				style = money
			}
			if col == summaryDetailColumn {
				style = detail
			}
			cell, err := excelize.CoordinatesToCellName(col, rowNum)
			if err != nil {
				return &reconerr.ExportError{Err: err}
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return &reconerr.ExportError{
					Problems: []string{constants.FormatError(constants.ErrConditionalStyles, sheet)},
					Err:      err,
				}
			}
		}
	}

	if protect {
		if err := f.ProtectSheet(sheet, &excelize.SheetProtectionOptions{
			SelectLockedCells:   true,
			SelectUnlockedCells: true,
			AutoFilter:          true,
			Sort:                true,
		}); err != nil {
			return &reconerr.ExportError{
				Problems: []string{constants.FormatError(constants.ErrProtectionApply, sheet)},
				Err:      err,
			}
		}
	}
	return nil
}

// table is one sheet's renderable content.
type table struct {
	headers []string
	rows    [][]interface{}
}

// writeTable renders a sheet with the shared presentation: styled
// header, bordered body, monetary number format, frozen top row,
// autofilter, widths sized to content.
func writeTable(f *excelize.File, styles *styleSet, sheet string, t table) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return &reconerr.ExportError{Err: err}
	}

	headerCells := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return &reconerr.ExportError{Err: err}
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(t.headers), 1)
	if err != nil {
		return &reconerr.ExportError{Err: err}
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, styles.header); err != nil {
		return &reconerr.ExportError{Err: err}
	}

	for i := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return &reconerr.ExportError{Err: err}
		}
		if err := f.SetSheetRow(sheet, cell, &t.rows[i]); err != nil {
			return &reconerr.ExportError{Err: err}
		}
	}

	if len(t.rows) > 0 {
		for col := 1; col <= len(t.headers); col++ {
			style := styles.text
			if moneyColumn(sheet, col) {
				style = styles.money
			}
			top, err := excelize.CoordinatesToCellName(col, 2)
			if err != nil {
				return &reconerr.ExportError{Err: err}
			}
			bottom, err := excelize.CoordinatesToCellName(col, len(t.rows)+1)
			if err != nil {
				return &reconerr.ExportError{Err: err}
			}
			if err := f.SetCellStyle(sheet, top, bottom, style); err != nil {
				return &reconerr.ExportError{Err: err}
			}
		}
	}

	if err := setContentWidths(f, sheet, t); err != nil {
		return &reconerr.ExportError{Err: err}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return &reconerr.ExportError{Err: err}
	}
	filterEnd, err := excelize.CoordinatesToCellName(len(t.headers), len(t.rows)+1)
	if err != nil {
		return &reconerr.ExportError{Err: err}
	}
	if err := f.AutoFilter(sheet, "A1:"+filterEnd, nil); err != nil {
		return &reconerr.ExportError{
			Problems: []string{constants.FormatError(constants.ErrAutoFilterApply, sheet)},
			Err:      err,
		}
	}
	return nil
}

func moneyColumn(sheet string, col int) bool {
	for _, c := range sheetMoneyColumns[sheet] {
		if c == col {
			return true
		}
	}
	return false
}

// setContentWidths sizes each column to its longest value, capped so a
// runaway detail text cannot blow the layout up.
func setContentWidths(f *excelize.File, sheet string, t table) error {
	const (
		padding  = 2
		maxWidth = 60
	)
	for col := 1; col <= len(t.headers); col++ {
		width := len([]rune(t.headers[col-1]))
		for _, row := range t.rows {
			if col-1 >= len(row) {
				continue
			}
			if l := len([]rune(fmt.Sprint(row[col-1]))); l > width {
				width = l
			}
		}
		if width > maxWidth {
			width = maxWidth
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(width+padding)); err != nil {
			return err
		}
	}
	return nil
}
