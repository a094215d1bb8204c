package core

import (
	"fmt"
	"time"
)

// WeekLabel maps a date to its "YYYY/wkNN" label using the Monday-anchored,
// first-Monday-of-year scheme the charts key off. The function is pure: the
// same date always yields the same label.
//
// Week 1 starts on the Monday of Jan 1's week. A date whose week number
// comes out non-positive belongs to the last week of the previous year, so
// the computation recurses with Dec 31 of year-1. Numbers above 53 clamp to
// "<year+1>/wk01"; that is a known approximation of the true ISO boundary,
// preserved because downstream consumers sort and join on these exact
// labels.
func WeekLabel(date time.Time) string {
	date = Midnight(date)
	year := date.Year()
	firstMonday := mondayOf(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	weekMonday := mondayOf(date)
	week := int(weekMonday.Sub(firstMonday)/(7*24*time.Hour)) + 1
	if week <= 0 {
		return WeekLabel(time.Date(year-1, time.December, 31, 0, 0, 0, 0, time.UTC))
	}
	if week > 53 {
		return fmt.Sprintf("%d/wk01", year+1)
	}
	return fmt.Sprintf("%d/wk%02d", year, week)
}

// mondayOf shifts a date to the Monday of its own week; Sundays go back six
// days, every other day goes back to the preceding Monday.
func mondayOf(t time.Time) time.Time {
	offset := 1 - int(t.Weekday())
	if t.Weekday() == time.Sunday {
		offset = -6
	}
	return t.AddDate(0, 0, offset)
}

// MonthLabel returns the "YYYY/MM" bucket key for a date.
func MonthLabel(date time.Time) string {
	return date.Format("2006/01")
}

// DayLabel returns the "YYYY-MM-DD" bucket key for a date.
func DayLabel(date time.Time) string {
	return date.Format("2006-01-02")
}
