package aggregate

import (
	"sort"
	"testing"

	"leadlens/internal/core"
)

func ledgerRow(date interface{}) core.LedgerRow {
	var cell core.RawCell
	switch v := date.(type) {
	case string:
		cell = core.StringCell(v)
	case float64:
		cell = core.NumberCell(v)
	case int:
		cell = core.NumberCell(float64(v))
	}
	return core.LedgerRow{RecordNumber: "x", RawDate: cell}
}

func TestCountLedgerConservation(t *testing.T) {
	rows := []core.LedgerRow{
		ledgerRow("19/09/2024"),
		ledgerRow(45558),
		ledgerRow("20/09/2024"),
		ledgerRow("not a date"),
		ledgerRow("31/02/2024"),
	}
	buckets, invalid := CountLedger(rows, Day)
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	if total+invalid != len(rows) {
		t.Errorf("conservation violated: counted=%d invalid=%d input=%d", total, invalid, len(rows))
	}
	if invalid != 2 {
		t.Errorf("invalid=%d want 2", invalid)
	}
}

func TestCountLedgerSerialAndStringShareBucket(t *testing.T) {
	rows := []core.LedgerRow{ledgerRow(45558), ledgerRow("19/09/2024")}
	for _, g := range []Granularity{Day, Week, Month} {
		buckets, _ := CountLedger(rows, g)
		if len(buckets) != 1 || buckets[0].Count != 2 {
			t.Errorf("granularity %v: %+v", g, buckets)
		}
	}
	weekly, _ := CountLedger(rows, Week)
	if weekly[0].Label != "2024/wk38" {
		t.Errorf("week label %s", weekly[0].Label)
	}
}

func TestCountLedgerSorted(t *testing.T) {
	rows := []core.LedgerRow{
		ledgerRow("01/12/2024"),
		ledgerRow("05/01/2024"),
		ledgerRow("19/09/2024"),
	}
	buckets, _ := CountLedger(rows, Month)
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	if !sort.StringsAreSorted(labels) {
		t.Errorf("labels not sorted: %v", labels)
	}
}

func TestSumCampaign(t *testing.T) {
	rows := []core.CampaignRow{
		{Date: "2024-09-19", CostAUD: 100, Impressions: 1000, Clicks: 30, Interactions: 10, Conversions: 4},
		{Date: "2024-09-19", CostAUD: 50, Impressions: 500, Clicks: 10, Interactions: 5, Conversions: 2},
		{Date: "2024-09-20", CostAUD: 20, Impressions: 200, Clicks: 4},
	}
	buckets, invalid := SumCampaign(rows, Day)
	if invalid != 0 {
		t.Errorf("invalid=%d", invalid)
	}
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets", len(buckets))
	}
	first := buckets[0]
	if first.Label != "2024-09-19" || first.CostAUD != 150 || first.Impressions != 1500 || first.Conversions != 6 {
		t.Errorf("sums: %+v", first)
	}
	if first.CostPerConversion != 25 {
		t.Errorf("cost per conversion: %v", first.CostPerConversion)
	}
	// No conversions: derived rate guards against division by zero.
	if buckets[1].CostPerConversion != 0 {
		t.Errorf("zero-conversion bucket rate: %v", buckets[1].CostPerConversion)
	}
}

func TestSumCampaignWeekly(t *testing.T) {
	rows := []core.CampaignRow{
		{Date: "2024-09-16", CostAUD: 10},
		{Date: "2024-09-22", CostAUD: 20}, // Sunday of the same week
		{Date: "2024-09-23", CostAUD: 5},  // next Monday
	}
	buckets, _ := SumCampaign(rows, Week)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets: %+v", len(buckets), buckets)
	}
	if buckets[0].Label != "2024/wk38" || buckets[0].CostAUD != 30 {
		t.Errorf("first: %+v", buckets[0])
	}
	if buckets[1].Label != "2024/wk39" || buckets[1].CostAUD != 5 {
		t.Errorf("second: %+v", buckets[1])
	}
}
