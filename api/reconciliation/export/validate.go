package export

import (
	"github.com/xuri/excelize/v2"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/reconerr"
)

// Validate re-opens a saved workbook and asserts the structural
// contract: every sheet present, every header in its place. A workbook
// that fails here must never be reported as a success.
func Validate(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return &reconerr.ExportError{
			Path:     path,
			Problems: []string{constants.ErrWorkbookReadback},
			Err:      err,
		}
	}
	defer f.Close()

	var problems []string
	for _, sheet := range sheetOrder {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			problems = append(problems, constants.FormatError(constants.ErrSheetMissing, sheet))
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			problems = append(problems, constants.FormatError(constants.ErrSheetMissing, sheet))
			continue
		}
		header := rows[0]
		for i, want := range sheetHeaders[sheet] {
			if i >= len(header) || header[i] != want {
				problems = append(problems,
					constants.FormatError(constants.ErrColumnNotInSheet, want, sheet))
			}
		}
	}

	if len(problems) > 0 {
		return &reconerr.ExportError{Path: path, Problems: problems}
	}
	return nil
}
