package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

type WebSocketMessageType string

const (
	EventMessage        WebSocketMessageType = "event"
	SubscriptionMessage WebSocketMessageType = "subscription"
	ErrorMessage        WebSocketMessageType = "error"
)

// StandardMessage is the envelope published to the broker and pushed to
// websocket clients.
type StandardMessage struct {
	ID           string                 `json:"id"`
	Type         WebSocketMessageType   `json:"type"`
	Event        string                 `json:"event,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
	Payload      map[string]interface{} `json:"payload"`
	ResourceType string                 `json:"resource_type,omitempty"`
	ResourceID   string                 `json:"resource_id,omitempty"`
	ProjectID    string                 `json:"project_id,omitempty"`
}

func NewStandardMessage(msgType WebSocketMessageType, event string, payload map[string]interface{}) *StandardMessage {
	return &StandardMessage{
		ID:        uuid.New().String(),
		Type:      msgType,
		Event:     event,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// NewEventMessage builds the envelope for an outbox event. The resource type
// is the event's entity, the resource id and project id are lifted from the
// event data when present.
func NewEventMessage(event Event) (*StandardMessage, error) {
	payload := map[string]interface{}{}
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
	}

	msg := NewStandardMessage(EventMessage, event.Event, payload)
	msg.ID = event.ID.String()
	msg.Timestamp = event.Timestamp
	msg.ResourceType = event.Entity
	if id, ok := payload["id"].(string); ok {
		msg.ResourceID = id
	}
	if projectID, ok := payload["project_id"].(string); ok {
		msg.ProjectID = projectID
	} else if event.Entity == "project" {
		msg.ProjectID = msg.ResourceID
	}
	return msg, nil
}

// Subject returns the broker subject for the message, e.g. "taskboard.task.created"
func (m *StandardMessage) Subject(prefix string) string {
	return prefix + "." + strings.ToLower(m.Event)
}
