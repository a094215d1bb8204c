// Package core holds the domain types shared by the ingestion pipeline:
// raw spreadsheet values, the uniform sheet-table representation, canonical
// row shapes and date/week arithmetic.
package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CellKind discriminates the value held by a RawCell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellString
)

// RawCell is a single spreadsheet cell as produced by the underlying parser.
// No datetime kind exists: dates arrive either as Excel serial numbers or as
// locale-formatted strings and are resolved later by ResolveDate.
type RawCell struct {
	Kind   CellKind
	Number float64
	Text   string
}

// NumberCell wraps a numeric value.
func NumberCell(v float64) RawCell {
	return RawCell{Kind: CellNumber, Number: v}
}

// StringCell wraps a text value. Whitespace-only input collapses to an
// empty cell so header fallback chains can treat it as absent.
func StringCell(s string) RawCell {
	if strings.TrimSpace(s) == "" {
		return RawCell{}
	}
	return RawCell{Kind: CellString, Text: s}
}

func (c RawCell) IsEmpty() bool { return c.Kind == CellEmpty }

// String returns the display form of the cell.
func (c RawCell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellString:
		return c.Text
	default:
		return ""
	}
}

// MarshalJSON emits the underlying value: null, a JSON number or a string.
// Consultation ledger dates are passed through to the UI in whatever form
// the source cell carried, so the wire shape must match the source kind.
func (c RawCell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellNumber:
		return json.Marshal(c.Number)
	case CellString:
		return json.Marshal(c.Text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts the same shapes MarshalJSON produces.
func (c *RawCell) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*c = RawCell{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*c = StringCell(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = NumberCell(v)
	return nil
}

// Row maps a column header (possibly non-ASCII) to a cell value.
type Row map[string]RawCell

// Sheet is one named table of rows.
type Sheet struct {
	Name string
	Rows []Row
}

// SheetTable is the uniform parsed form of an upload: an ordered sequence of
// named sheets. Built fresh per request and discarded after the pipeline
// finishes; never persisted.
type SheetTable struct {
	Sheets []Sheet
}

// Names returns the sheet names in workbook order.
func (t SheetTable) Names() []string {
	names := make([]string, len(t.Sheets))
	for i, s := range t.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet looks a sheet up by its exact name.
func (t SheetTable) Sheet(name string) (Sheet, bool) {
	for _, s := range t.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}
