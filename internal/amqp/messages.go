package amqp

import (
	"encoding/json"
	"time"
)

// IngestionCompletedMessage announces one finished parse. It carries only
// the per-dataset summary; consumers that need the rows call the API.
type IngestionCompletedMessage struct {
	Source    string          `json:"source"`
	Processed map[string]bool `json:"processed"`
	RowCounts map[string]int  `json:"rowCounts"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewIngestionCompletedMessage builds a message for the given parse summary.
func NewIngestionCompletedMessage(source string, processed map[string]bool, rowCounts map[string]int) *IngestionCompletedMessage {
	return &IngestionCompletedMessage{
		Source:    source,
		Processed: processed,
		RowCounts: rowCounts,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *IngestionCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// IngestionCompletedMessageFromJSON creates a message from JSON bytes
func IngestionCompletedMessageFromJSON(data []byte) (*IngestionCompletedMessage, error) {
	var msg IngestionCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
