package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// readDelimited handles the text exports: semicolon-delimited by
// default, tab when the header line says so, Windows-1252 when the
// bytes are not valid UTF-8.
func readDelimited(path string) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !utf8.Valid(raw) {
		raw, err = charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode windows-1252: %w", err)
		}
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = sniffDelimiter(raw)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited text: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks between the two delimiters the export profiles
// use. Semicolon wins ties because it is the default.
func sniffDelimiter(data []byte) rune {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	if bytes.Count(head, []byte{'\t'}) > bytes.Count(head, []byte{';'}) {
		return '\t'
	}
	return ';'
}
