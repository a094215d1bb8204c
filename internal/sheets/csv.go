package sheets

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"leadlens/internal/core"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads CSV text into a single-sheet SheetTable. Parsing is
// deliberately permissive: a leading byte-order mark is stripped, quoting is
// relaxed, ragged rows are tolerated and every field is whitespace-trimmed.
// CSV carries no type information, so every cell stays a string; the
// numeric-string fallback in DateResolver handles serial dates exported as
// plain text.
func ParseCSV(data []byte, sheetName string) (core.SheetTable, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	// csv.Reader happily treats arbitrary binary as a one-field record, so
	// reject anything that is not text up front.
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return core.SheetTable{}, fmt.Errorf("csv content is not valid UTF-8 text")
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var headers []string
	sheet := core.Sheet{Name: sheetName}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return core.SheetTable{}, fmt.Errorf("read csv: %w", err)
		}
		if isBlank(record) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(record))
			for i, h := range record {
				headers[i] = strings.TrimSpace(h)
			}
			continue
		}
		row := core.Row{}
		for i, v := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell := core.StringCell(strings.TrimSpace(v))
			if cell.IsEmpty() {
				continue
			}
			row[headers[i]] = cell
		}
		if len(row) > 0 {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	if headers == nil {
		return core.SheetTable{}, fmt.Errorf("csv has no header row")
	}
	return core.SheetTable{Sheets: []core.Sheet{sheet}}, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
