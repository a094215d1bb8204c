package core

import (
	"testing"
	"time"
)

func TestWeekLabelFixture2024(t *testing.T) {
	// Jan 1 2024 is a Monday, so the first Monday is Jan 1 itself and the
	// week of Sep 16-22 is week 38.
	serialDate, ok := ResolveDate(NumberCell(45558), DMY)
	if !ok {
		t.Fatal("serial did not resolve")
	}
	stringDate, ok := ResolveDate(StringCell("19/09/2024"), DMY)
	if !ok {
		t.Fatal("string did not resolve")
	}
	if WeekLabel(serialDate) != WeekLabel(stringDate) {
		t.Fatalf("serial and string encodings of the same day landed in different weeks: %s vs %s",
			WeekLabel(serialDate), WeekLabel(stringDate))
	}
	if got := WeekLabel(serialDate); got != "2024/wk38" {
		t.Errorf("got %s want 2024/wk38", got)
	}
}

func TestWeekLabelIdempotent(t *testing.T) {
	d := time.Date(2024, 3, 7, 13, 45, 0, 0, time.UTC)
	if WeekLabel(d) != WeekLabel(d) {
		t.Error("WeekLabel is not pure")
	}
	// Time-of-day must not change the bucket.
	if WeekLabel(d) != WeekLabel(Midnight(d)) {
		t.Error("time-of-day changed the week label")
	}
}

func TestWeekLabelMonotonicWithinYear(t *testing.T) {
	// For a < b in the same year less than a week apart, labels are
	// lexicographically ordered (zero-padded, year-prefixed).
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 340; day++ {
		a := start.AddDate(0, 0, day)
		for delta := 1; delta < 7; delta++ {
			b := a.AddDate(0, 0, delta)
			if b.Year() != a.Year() {
				continue
			}
			if WeekLabel(a) > WeekLabel(b) {
				t.Fatalf("labels not monotonic: %v=%s > %v=%s", a, WeekLabel(a), b, WeekLabel(b))
			}
		}
	}
}

func TestWeekLabelYearEdges(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		// Jan 1 2023 is a Sunday; its Monday (Dec 26 2022) is also the
		// scheme's first Monday for 2023, so it is still week 1 of 2023.
		{time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), "2023/wk01"},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "2023/wk53"},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024/wk01"},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "2024/wk53"},
	}
	for _, tc := range tests {
		if got := WeekLabel(tc.date); got != tc.want {
			t.Errorf("%v: got %s want %s", tc.date, got, tc.want)
		}
	}
}

func TestMonthAndDayLabels(t *testing.T) {
	d := time.Date(2024, 9, 19, 0, 0, 0, 0, time.UTC)
	if got := MonthLabel(d); got != "2024/09" {
		t.Errorf("month label %s", got)
	}
	if got := DayLabel(d); got != "2024-09-19" {
		t.Errorf("day label %s", got)
	}
}
