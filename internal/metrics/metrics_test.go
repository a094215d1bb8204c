package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecorderExposesCounters(t *testing.T) {
	r := NewRecorder()
	r.UploadReceived()
	r.UploadReceived()
	r.CacheHit()
	r.DatasetOutcome("campaign", "ok")
	r.DatasetOutcome("consultation", "failed")
	r.InvalidDates(3)
	r.ObserveParseDuration(0.25)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		"leadlens_uploads_total 2",
		"leadlens_upload_cache_hits_total 1",
		`leadlens_dataset_outcomes_total{dataset="campaign",outcome="ok"} 1`,
		`leadlens_dataset_outcomes_total{dataset="consultation",outcome="failed"} 1`,
		"leadlens_invalid_dates_total 3",
		"leadlens_parse_duration_seconds_count 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRecordersAreIndependent(t *testing.T) {
	// Two Recorders must not collide on registration.
	a := NewRecorder()
	b := NewRecorder()
	a.UploadReceived()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, req)

	if strings.Contains(rec.Body.String(), "leadlens_uploads_total 1") {
		t.Error("recorder b observed recorder a's counter")
	}
}
