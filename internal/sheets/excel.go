package sheets

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"leadlens/internal/core"
)

// ParseWorkbook reads an xlsx workbook from memory into a SheetTable. Raw
// cell values are requested so date cells arrive as their serial numbers
// instead of display strings; DateResolver owns the decoding.
func ParseWorkbook(data []byte) (core.SheetTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return core.SheetTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var table core.SheetTable
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return core.SheetTable{}, fmt.Errorf("read sheet %q: %w", name, err)
		}
		table.Sheets = append(table.Sheets, sheetFromMatrix(name, rows))
	}
	if len(table.Sheets) == 0 {
		return core.SheetTable{}, fmt.Errorf("workbook has no sheets")
	}
	return table, nil
}

// sheetFromMatrix converts a header-first string matrix into named rows.
// Columns with blank headers are dropped; ragged rows are tolerated.
func sheetFromMatrix(name string, matrix [][]string) core.Sheet {
	sheet := core.Sheet{Name: name}
	if len(matrix) == 0 {
		return sheet
	}
	headers := make([]string, len(matrix[0]))
	for i, h := range matrix[0] {
		headers[i] = strings.TrimSpace(h)
	}
	for _, raw := range matrix[1:] {
		row := core.Row{}
		empty := true
		for i, v := range raw {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell := coerceCell(v)
			if cell.IsEmpty() {
				continue
			}
			row[headers[i]] = cell
			empty = false
		}
		if !empty {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet
}

// coerceCell classifies a raw cell value. Values that parse cleanly as
// numbers become number cells, matching how the binary format stores them;
// everything else stays text.
func coerceCell(v string) core.RawCell {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return core.RawCell{}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return core.NumberCell(n)
	}
	return core.StringCell(trimmed)
}
