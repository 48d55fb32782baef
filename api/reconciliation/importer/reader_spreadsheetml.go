package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// The item and advance extracts are Excel 2003 SpreadsheetML: an XML
// document with Workbook/Worksheet/Table/Row/Cell/Data nesting. Cells
// may skip columns via the ss:Index attribute.

type ssWorkbook struct {
	Worksheets []ssWorksheet `xml:"Worksheet"`
}

type ssWorksheet struct {
	Table ssTable `xml:"Table"`
}

type ssTable struct {
	Rows []ssRow `xml:"Row"`
}

type ssRow struct {
	Cells []ssCell `xml:"Cell"`
}

type ssCell struct {
	Index int    `xml:"Index,attr"`
	Data  ssData `xml:"Data"`
}

type ssData struct {
	Value string `xml:",chardata"`
}

func readSpreadsheetML(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(charset) {
		case "", "utf-8", "utf8":
			return input, nil
		case "windows-1252", "iso-8859-1", "latin1", "latin-1":
			return charmap.Windows1252.NewDecoder().Reader(input), nil
		}
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}

	var wb ssWorkbook
	if err := dec.Decode(&wb); err != nil {
		return nil, fmt.Errorf("parse workbook markup: %w", err)
	}
	if len(wb.Worksheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	table := wb.Worksheets[0].Table
	out := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, 0, len(row.Cells))
		col := 0
		for _, cell := range row.Cells {
			// ss:Index is 1-based; missing cells in between read as "".
			for cell.Index > 0 && col < cell.Index-1 {
				cells = append(cells, "")
				col++
			}
			cells = append(cells, cell.Data.Value)
			col++
		}
		out = append(out, cells)
	}
	return out, nil
}
