// Package normalize maps the heterogeneous column headers of the source
// exports onto the canonical row types. Each canonical field carries an
// ordered fallback chain of headers (localized first, then ASCII variants);
// the first present value wins. Absent numeric fields coerce to 0, absent
// string fields to "".
package normalize

import (
	"strconv"
	"strings"

	"leadlens/internal/core"
)

// cnyPerAUD is the fixed conversion rate applied to campaign spend columns,
// which the ad platform exports in CNY.
const cnyPerAUD = 4.7

// pickCell returns the first present cell along a header fallback chain.
func pickCell(row core.Row, headers ...string) core.RawCell {
	for _, h := range headers {
		if cell, ok := row[h]; ok && !cell.IsEmpty() {
			return cell
		}
	}
	return core.RawCell{}
}

// pickString coerces the first present value to a trimmed string.
func pickString(row core.Row, headers ...string) string {
	return strings.TrimSpace(pickCell(row, headers...).String())
}

// pickFloat coerces the first present value to a float. Percent suffixes
// are stripped and thousands separators removed before parsing; anything
// unparseable counts as absent.
func pickFloat(row core.Row, headers ...string) float64 {
	cell := pickCell(row, headers...)
	switch cell.Kind {
	case core.CellNumber:
		return cell.Number
	case core.CellString:
		s := strings.TrimSpace(cell.Text)
		s = strings.TrimSuffix(s, "%")
		s = strings.ReplaceAll(s, ",", "")
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
	}
	return 0
}

// pickInt truncates pickFloat to an integer count.
func pickInt(row core.Row, headers ...string) int {
	return int(pickFloat(row, headers...))
}
