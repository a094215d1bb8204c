package core

import (
	"strconv"
	"strings"
	"time"
)

// DateFormat names the day-order convention used by slash-separated date
// strings. It must be supplied by the caller per dataset; the string shape
// alone cannot distinguish 03/04 meaning March 4 from April 3.
type DateFormat int

const (
	DMY DateFormat = iota
	MDY
)

// excelEpoch is the conventional off-by-two Excel epoch: serial 1 is
// 1899-12-31 in the 1900 date system once the fictional Feb 29 1900 is
// accounted for.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// FromExcelSerial converts an Excel day-count serial to a UTC time. The
// fractional part encodes time-of-day.
func FromExcelSerial(serial float64) time.Time {
	ms := int64(serial * 24 * 60 * 60 * 1000)
	return excelEpoch.Add(time.Duration(ms) * time.Millisecond)
}

// ToExcelSerial returns the whole-day serial for a date, the inverse of
// FromExcelSerial for midnight values.
func ToExcelSerial(t time.Time) int {
	t = Midnight(t)
	return int(t.Sub(excelEpoch) / (24 * time.Hour))
}

// Midnight truncates a time to its UTC calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// genericLayouts are tried, in order, for date strings that are neither
// Excel serials nor slash dates.
var genericLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006.01.02",
	"2006年01月02日",
	"2006年1月2日",
	time.RFC3339,
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ResolveDate converts a raw cell of unknown encoding into a calendar date.
// The second return is false when the cell cannot be read as a date; callers
// must skip such rows for date-bucketed aggregation rather than fail.
func ResolveDate(cell RawCell, format DateFormat) (time.Time, bool) {
	switch cell.Kind {
	case CellNumber:
		if cell.Number <= 0 {
			return time.Time{}, false
		}
		return Midnight(FromExcelSerial(cell.Number)), true
	case CellString:
		return resolveDateString(cell.Text, format)
	default:
		return time.Time{}, false
	}
}

func resolveDateString(s string, format DateFormat) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.Contains(s, "/") {
		if t, ok := parseSlashDate(s, format); ok {
			return t, true
		}
	}
	// A bare numeric string is never valid calendar-date text, so it must
	// be tried as an Excel serial before the generic layouts.
	if isDigits(s) {
		if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
			return Midnight(FromExcelSerial(serial)), true
		}
		return time.Time{}, false
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Midnight(t), true
		}
	}
	return time.Time{}, false
}

// parseSlashDate handles d/m/y or m/d/y strings depending on the dataset's
// convention. Two-digit years pivot at 50: 68 → 1968, 24 → 2024.
func parseSlashDate(s string, format DateFormat) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}
	var day, month, year int
	switch format {
	case MDY:
		month, day, year = nums[0], nums[1], nums[2]
	default:
		day, month, year = nums[0], nums[1], nums[2]
	}
	if year < 100 {
		if year > 50 {
			year += 1900
		} else {
			year += 2000
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject normalized overflow such as 31/02.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
