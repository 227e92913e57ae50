package events

import (
	"encoding/json"
	"time"

	"budget-core/core/diff"
)

// ChangeMessage is the payload published for each change set.
type ChangeMessage struct {
	Topic     string         `json:"topic"`
	Changes   diff.ChangeSet `json:"changes"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewChangeMessage creates a message stamped with the current time.
func NewChangeMessage(topic string, cs diff.ChangeSet) *ChangeMessage {
	return &ChangeMessage{
		Topic:     topic,
		Changes:   cs,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes a message from JSON bytes.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
