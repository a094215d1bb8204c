package worker

import (
	"context"
	"fmt"
	"testing"

	"leadlens/internal/amqp"
)

func TestHandleMessageAccumulatesStats(t *testing.T) {
	w := NewEventWorker()

	msg := amqp.NewIngestionCompletedMessage("report.xlsx",
		map[string]bool{"consultation": true, "campaign": false},
		map[string]int{"consultation": 12})

	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	parses, rows, missing := w.Stats()
	if parses != 2 || rows != 24 || missing != 2 {
		t.Errorf("stats = %d/%d/%d, want 2/24/2", parses, rows, missing)
	}

	history := w.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Source != "report.xlsx" {
		t.Errorf("history source = %q", history[0].Source)
	}
}

func TestHandleMessageRejectsEmptySource(t *testing.T) {
	w := NewEventWorker()
	msg := amqp.NewIngestionCompletedMessage("", nil, nil)
	if err := w.HandleMessage(context.Background(), msg); err == nil {
		t.Error("expected error for empty source")
	}
}

func TestHistoryIsBounded(t *testing.T) {
	w := NewEventWorker()
	w.historySize = 5

	for i := 0; i < 12; i++ {
		msg := amqp.NewIngestionCompletedMessage(fmt.Sprintf("upload-%d.xlsx", i), nil, nil)
		if err := w.HandleMessage(context.Background(), msg); err != nil {
			t.Fatalf("HandleMessage: %v", err)
		}
	}

	history := w.History()
	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	if history[4].Source != "upload-11.xlsx" {
		t.Errorf("newest record = %q", history[4].Source)
	}
}
