package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPendingEvents_PublishesInOrder(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	owner := f.user(t, "owner")
	project := f.project(t, owner, "Website")
	task := f.task(t, project, "Publish me")

	publisher := &testutils.RecordingPublisher{}
	dispatcher := NewEventHandlerService(f.db, publisher, "taskboard", time.Second, 10)

	n, err := dispatcher.ProcessPendingEvents()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{
		"taskboard.user.created",
		"taskboard.project.created",
		"taskboard.task.created",
	}, publisher.Published())

	var message models.StandardMessage
	require.NoError(t, json.Unmarshal(publisher.Payloads[2], &message))
	assert.Equal(t, models.EventMessage, message.Type)
	assert.Equal(t, "task.created", message.Event)
	assert.Equal(t, "task", message.ResourceType)
	assert.Equal(t, task.ID.String(), message.ResourceID)
	assert.Equal(t, project.ID.String(), message.ProjectID)
	assert.Equal(t, "Publish me", message.Payload["title"])

	pending, err := testutils.PendingEvents(f.db)
	require.NoError(t, err)
	assert.Empty(t, pending)

	var dispatched []models.Event
	require.NoError(t, f.db.DB.Find(&dispatched).Error)
	for _, event := range dispatched {
		assert.True(t, event.Dispatched)
		assert.Equal(t, models.EventStatusCompleted, event.Status)
		assert.NotNil(t, event.DispatchedAt)
	}

	n, err = dispatcher.ProcessPendingEvents()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProcessPendingEvents_BatchSize(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	owner := f.user(t, "owner")
	f.project(t, owner, "Website")

	publisher := &testutils.RecordingPublisher{}
	dispatcher := NewEventHandlerService(f.db, publisher, "taskboard", time.Second, 1)

	n, err := dispatcher.ProcessPendingEvents()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"taskboard.user.created"}, publisher.Published())

	pending, err := testutils.PendingEvents(f.db)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "project.created", pending[0].Event)
}

func TestProcessPendingEvents_PublishFailureKeepsRow(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	f.user(t, "owner")

	publisher := &testutils.RecordingPublisher{Err: errors.New("broker down")}
	dispatcher := NewEventHandlerService(f.db, publisher, "taskboard", time.Second, 10)

	n, err := dispatcher.ProcessPendingEvents()
	assert.Error(t, err)
	assert.Zero(t, n)

	pending, err := testutils.PendingEvents(f.db)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.EventStatusPending, pending[0].Status)

	publisher.Err = nil
	n, err = dispatcher.ProcessPendingEvents()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEventHandler_StartStop(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	f.user(t, "owner")

	publisher := &testutils.RecordingPublisher{}
	dispatcher := NewEventHandlerService(f.db, publisher, "taskboard", 10*time.Millisecond, 10)

	dispatcher.Start(context.Background())
	dispatcher.Start(context.Background())

	assert.Eventually(t, func() bool {
		return len(publisher.Published()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	dispatcher.Stop()
	dispatcher.Stop()
}
