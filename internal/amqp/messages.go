package amqp

import (
	"encoding/json"
	"time"
)

// StateSavedMessage announces that a new revision of the ledger state was
// written. It carries no data; consumers read the state from the store.
type StateSavedMessage struct {
	Revision  int64     `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

// NewStateSavedMessage creates a message for revision saved at at.
func NewStateSavedMessage(revision int64, at time.Time) *StateSavedMessage {
	if at.IsZero() {
		at = time.Now()
	}
	return &StateSavedMessage{
		Revision:  revision,
		Timestamp: at,
	}
}

// ToJSON converts the message to JSON bytes
func (m *StateSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// StateSavedMessageFromJSON creates a message from JSON bytes
func StateSavedMessageFromJSON(data []byte) (*StateSavedMessage, error) {
	var msg StateSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
