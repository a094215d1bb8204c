package ingest

import (
	"time"

	"leadlens/internal/aggregate"
	"leadlens/internal/core"
)

// LedgerData is the normalized consultation dataset plus its rollups.
type LedgerData struct {
	Rows    []core.LedgerRow        `json:"rows"`
	Daily   []aggregate.CountBucket `json:"daily"`
	Weekly  []aggregate.CountBucket `json:"weekly"`
	Monthly []aggregate.CountBucket `json:"monthly"`
}

// CampaignData is a normalized campaign dataset plus its rollups.
type CampaignData struct {
	Rows    []core.CampaignRow       `json:"rows"`
	Daily   []aggregate.MetricBucket `json:"daily"`
	Weekly  []aggregate.MetricBucket `json:"weekly"`
	Monthly []aggregate.MetricBucket `json:"monthly"`
}

// PayloadData carries each dataset that was found in the upload. Datasets
// that were absent or failed stay nil and are reported through Processed.
type PayloadData struct {
	Consultation *LedgerData    `json:"consultation,omitempty"`
	Campaign     *CampaignData  `json:"campaign,omitempty"`
	NotesA       []core.NoteRow `json:"notesA,omitempty"`
	CampaignB    *CampaignData  `json:"campaignB,omitempty"`
	NotesB       []core.NoteRow `json:"notesB,omitempty"`
}

// Payload is the full response for one parsed upload. Processed always
// contains an entry for every known dataset key, true only when that
// dataset was located and normalized without error.
type Payload struct {
	Processed map[string]bool `json:"processed"`
	Data      PayloadData     `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// DatasetOutcome describes how one dataset fared during a parse.
type DatasetOutcome int

const (
	DatasetOK DatasetOutcome = iota
	DatasetAbsent
	DatasetFailed
)

func (o DatasetOutcome) String() string {
	switch o {
	case DatasetOK:
		return "ok"
	case DatasetAbsent:
		return "absent"
	default:
		return "failed"
	}
}

// Result pairs the payload with per-dataset outcomes and counters the
// HTTP layer and event publisher care about.
type Result struct {
	Payload       Payload
	Outcomes      map[core.DatasetKind]DatasetOutcome
	RowCounts     map[string]int
	InvalidDates  int
	FromCache     bool
	ContentSHA256 string
}
