package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// RecordKind tells the worker which table a message refers to.
type RecordKind string

const (
	KindTrip    RecordKind = "trip"
	KindExpense RecordKind = "expense"
)

// RecordSyncMessage asks the worker to replicate one record to the
// spreadsheet. It carries only the ID and version; the worker fetches
// the full record from the database, so a message can never go stale.
type RecordSyncMessage struct {
	Kind      RecordKind `json:"kind"`
	ID        int64      `json:"id"`
	Version   int64      `json:"version"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewRecordSyncMessage creates a sync message for one record.
func NewRecordSyncMessage(kind RecordKind, id, version int64) *RecordSyncMessage {
	return &RecordSyncMessage{
		Kind:      kind,
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSyncMessageFromJSON creates a message from JSON bytes,
// rejecting unknown kinds so bad payloads fail before reaching the
// handler.
func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Kind != KindTrip && msg.Kind != KindExpense {
		return nil, fmt.Errorf("unknown record kind %q", msg.Kind)
	}
	return &msg, nil
}
