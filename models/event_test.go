package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	testCases := []struct {
		name      string
		event     string
		entity    string
		operation string
		actorID   string
		data      interface{}
		wantErr   bool
	}{
		{
			name:      "Valid event",
			event:     "task.created",
			entity:    "task",
			operation: "create",
			actorID:   "8f0c4c1e-2b8a-4f43-9d6a-2f5f3c1b7a10",
			data:      map[string]interface{}{"title": "Write report"},
			wantErr:   false,
		},
		{
			name:      "Anonymous actor",
			event:     "tag.attached",
			entity:    "tag",
			operation: "attach",
			data:      map[string]interface{}{"tag_id": "t", "task_id": "k"},
			wantErr:   false,
		},
		{
			name:    "Invalid JSON data",
			event:   "task.created",
			entity:  "task",
			data:    make(chan int),
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := NewEvent(tc.event, tc.entity, tc.operation, tc.actorID, tc.data)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, event)
			assert.Equal(t, tc.event, event.Event)
			assert.Equal(t, tc.entity, event.Entity)
			assert.Equal(t, tc.operation, event.Operation)
			assert.Equal(t, tc.actorID, event.ActorID)
			assert.Equal(t, EventStatusPending, event.Status)
			assert.Equal(t, 1, event.Version)
			assert.False(t, event.Dispatched)
			assert.Nil(t, event.DispatchedAt)
		})
	}
}

func TestNewEventMessage(t *testing.T) {
	taskID := uuid.New()
	projectID := uuid.New()
	event, err := NewEvent("task.updated", "task", "update", "", map[string]interface{}{
		"id":         taskID.String(),
		"project_id": projectID.String(),
		"status":     "completed",
	})
	require.NoError(t, err)
	event.ID = uuid.New()

	msg, err := NewEventMessage(*event)
	require.NoError(t, err)

	assert.Equal(t, event.ID.String(), msg.ID)
	assert.Equal(t, EventMessage, msg.Type)
	assert.Equal(t, "task.updated", msg.Event)
	assert.Equal(t, "task", msg.ResourceType)
	assert.Equal(t, taskID.String(), msg.ResourceID)
	assert.Equal(t, projectID.String(), msg.ProjectID)
	assert.Equal(t, "completed", msg.Payload["status"])
	assert.Equal(t, "taskboard.task.updated", msg.Subject("taskboard"))
}

func TestNewEventMessage_ProjectUsesOwnID(t *testing.T) {
	projectID := uuid.New()
	event, err := NewEvent("project.soft_deleted", "project", "soft_delete", "", map[string]interface{}{
		"id": projectID.String(),
	})
	require.NoError(t, err)

	msg, err := NewEventMessage(*event)
	require.NoError(t, err)
	assert.Equal(t, projectID.String(), msg.ProjectID)
}

func TestNewEventMessage_InvalidData(t *testing.T) {
	event := Event{Event: "task.created", Entity: "task", Data: []byte("not json")}
	_, err := NewEventMessage(event)
	assert.Error(t, err)
}
