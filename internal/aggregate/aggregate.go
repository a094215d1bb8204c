// Package aggregate folds normalized rows into daily, weekly and monthly
// summary buckets. Count-based datasets (the consultation ledger) count
// rows; sum-based datasets (campaign ledgers) add their metric columns.
// Buckets come out sorted by label, which is safe because every label
// scheme is zero-padded and year-prefixed.
package aggregate

import (
	"sort"
	"time"

	"leadlens/internal/core"
)

// Granularity selects the bucket key scheme.
type Granularity int

const (
	Day Granularity = iota
	Week
	Month
)

func labelFor(t time.Time, g Granularity) string {
	switch g {
	case Week:
		return core.WeekLabel(t)
	case Month:
		return core.MonthLabel(t)
	default:
		return core.DayLabel(t)
	}
}

// CountBucket holds the record count for one period.
type CountBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MetricBucket holds summed campaign metrics for one period plus the
// derived cost-per-conversion, computed after folding.
type MetricBucket struct {
	Label             string  `json:"label"`
	CostAUD           float64 `json:"costAud"`
	Impressions       int     `json:"impressions"`
	Clicks            int     `json:"clicks"`
	Interactions      int     `json:"interactions"`
	Conversions       int     `json:"conversions"`
	CostPerConversion float64 `json:"costPerConversion"`
}

// CountLedger buckets consultation rows by their resolved date. Rows whose
// date cell cannot be parsed are dropped from the buckets and tallied in
// the returned invalid counter. Every input row is either counted in
// exactly one bucket or in the invalid tally.
func CountLedger(rows []core.LedgerRow, g Granularity) ([]CountBucket, int) {
	counts := map[string]int{}
	invalid := 0
	for _, row := range rows {
		date, ok := core.ResolveDate(row.RawDate, core.DMY)
		if !ok {
			invalid++
			continue
		}
		counts[labelFor(date, g)]++
	}
	out := make([]CountBucket, 0, len(counts))
	for label, n := range counts {
		out = append(out, CountBucket{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, invalid
}

// SumCampaign buckets campaign rows, whose dates were normalized to
// YYYY-MM-DD at ingestion. The cost-per-conversion rate is derived only
// after all rows fold in, and is 0 when a bucket saw no conversions.
func SumCampaign(rows []core.CampaignRow, g Granularity) ([]MetricBucket, int) {
	sums := map[string]*MetricBucket{}
	invalid := 0
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			invalid++
			continue
		}
		label := labelFor(date, g)
		b := sums[label]
		if b == nil {
			b = &MetricBucket{Label: label}
			sums[label] = b
		}
		b.CostAUD += row.CostAUD
		b.Impressions += row.Impressions
		b.Clicks += row.Clicks
		b.Interactions += row.Interactions
		b.Conversions += row.Conversions
	}
	out := make([]MetricBucket, 0, len(sums))
	for _, b := range sums {
		if b.Conversions > 0 {
			b.CostPerConversion = b.CostAUD / float64(b.Conversions)
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, invalid
}
