package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/cleaning"
	"ConciliacaoFornecedores/api/reconciliation/reconerr"
)

// Sheet is the uniform product of every reader: the located header row
// plus the data rows below it.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// ReadFile loads a source file with the reader its extension selects
// and locates the header at the given physical row.
func ReadFile(path string, headerRow int) (*Sheet, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".xls":
		rows, err = readXLS(path)
	case ".csv", ".txt":
		rows, err = readDelimited(path)
	case ".xml":
		rows, err = readSpreadsheetML(path)
	default:
		return nil, &reconerr.FormatError{
			File:   filepath.Base(path),
			Reason: constants.FormatError(constants.ErrUnsupportedExtension, ext),
		}
	}
	if err != nil {
		return nil, &reconerr.ImportError{File: filepath.Base(path), Err: err}
	}
	return buildSheet(filepath.Base(path), rows, headerRow)
}

func buildSheet(file string, rows [][]string, headerRow int) (*Sheet, error) {
	if len(rows) == 0 {
		return nil, &reconerr.FormatError{File: file, Reason: constants.ErrEmptyFile}
	}
	if headerRow >= len(rows) {
		return nil, &reconerr.FormatError{File: file, Reason: constants.ErrHeaderRowMissing}
	}

	headers := make([]string, len(rows[headerRow]))
	for i, h := range rows[headerRow] {
		headers[i] = cleaning.StripArtifacts(h)
	}
	headers = disambiguate(headers)

	data := rows[headerRow+1:]
	if len(data) == 0 {
		return nil, &reconerr.FormatError{File: file, Reason: constants.ErrEmptyFile}
	}
	return &Sheet{Headers: headers, Rows: data}, nil
}

// disambiguate suffixes repeated header names with .1, .2, ... so the
// duplicated Codigo/Descricao pairs of the markup extracts stay
// addressable.
func disambiguate(headers []string) []string {
	counts := make(map[string]int, len(headers))
	out := make([]string, len(headers))
	for i, h := range headers {
		n := counts[h]
		counts[h] = n + 1
		if n == 0 {
			out[i] = h
			continue
		}
		out[i] = fmt.Sprintf("%s.%d", h, n)
	}
	return out
}
