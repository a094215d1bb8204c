// Package worker consumes ingestion events off the queue and keeps a
// rolling audit of recent parses. It exists so downstream automation
// (report refreshes, alerting) has one place to hook into.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"leadlens/internal/amqp"
)

const defaultHistorySize = 100

// EventWorker handles ingestion-completed messages.
type EventWorker struct {
	mu          sync.Mutex
	history     []IngestionRecord
	historySize int

	totalParses  int64
	totalRows    int64
	totalMissing int64
}

// IngestionRecord is one processed event in the audit history.
type IngestionRecord struct {
	Source     string
	Processed  map[string]bool
	RowCounts  map[string]int
	ReceivedAt time.Time
}

func NewEventWorker() *EventWorker {
	return &EventWorker{historySize: defaultHistorySize}
}

// HandleMessage processes a single ingestion event from AMQP.
func (w *EventWorker) HandleMessage(ctx context.Context, msg *amqp.IngestionCompletedMessage) error {
	if msg.Source == "" {
		return fmt.Errorf("ingestion event without source")
	}

	rows := 0
	for _, n := range msg.RowCounts {
		rows += n
	}
	missing := 0
	for _, ok := range msg.Processed {
		if !ok {
			missing++
		}
	}

	w.mu.Lock()
	w.totalParses++
	w.totalRows += int64(rows)
	w.totalMissing += int64(missing)
	w.history = append(w.history, IngestionRecord{
		Source:     msg.Source,
		Processed:  msg.Processed,
		RowCounts:  msg.RowCounts,
		ReceivedAt: time.Now(),
	})
	if len(w.history) > w.historySize {
		w.history = w.history[len(w.history)-w.historySize:]
	}
	w.mu.Unlock()

	slog.InfoContext(ctx, "Recorded ingestion event",
		"source", msg.Source,
		"rows", rows,
		"missing_datasets", missing)

	return nil
}

// History returns a copy of the recent event records, oldest first.
func (w *EventWorker) History() []IngestionRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]IngestionRecord, len(w.history))
	copy(out, w.history)
	return out
}

// Stats reports the running totals since startup.
func (w *EventWorker) Stats() (parses, rows, missingDatasets int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totalParses, w.totalRows, w.totalMissing
}
