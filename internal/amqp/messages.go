package amqp

import (
	"encoding/json"
	"time"
)

// BatchIngestedMessage announces that a new transaction batch replaced the
// persisted history. It carries only identifiers and counts; the worker
// reads the actual rows back from storage.
type BatchIngestedMessage struct {
	BatchID   string    `json:"batch_id"`
	Count     int       `json:"count"`
	Rejected  int       `json:"rejected"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBatchIngestedMessage creates an ingest announcement for a batch.
func NewBatchIngestedMessage(batchID string, count, rejected int) *BatchIngestedMessage {
	return &BatchIngestedMessage{
		BatchID:   batchID,
		Count:     count,
		Rejected:  rejected,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BatchIngestedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BatchIngestedMessageFromJSON creates a message from JSON bytes
func BatchIngestedMessageFromJSON(data []byte) (*BatchIngestedMessage, error) {
	var msg BatchIngestedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
