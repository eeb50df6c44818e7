package amqp

import (
	"encoding/json"
	"time"
)

// RecordChangeMessage notifies the export worker that the training collection
// changed. It carries only the record ID and the operation; the worker reloads
// the full collection from the state store.
type RecordChangeMessage struct {
	ID        string    `json:"id,omitempty"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordChangeMessage creates a change message stamped with the current
// time. ID is empty for bulk operations.
func NewRecordChangeMessage(id, op string) *RecordChangeMessage {
	return &RecordChangeMessage{
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
