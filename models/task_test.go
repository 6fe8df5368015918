package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskTransitionTo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)

	testCases := []struct {
		name          string
		start         Task
		target        TaskStatus
		wantCompleted *time.Time
	}{
		{
			name:          "new task created completed is stamped",
			start:         Task{},
			target:        TaskStatusCompleted,
			wantCompleted: &now,
		},
		{
			name:          "entering completed stamps now",
			start:         Task{Status: TaskStatusInProgress},
			target:        TaskStatusCompleted,
			wantCompleted: &now,
		},
		{
			name:          "staying completed keeps original stamp",
			start:         Task{Status: TaskStatusCompleted, CompletedAt: &earlier},
			target:        TaskStatusCompleted,
			wantCompleted: &earlier,
		},
		{
			name:          "leaving completed clears stamp",
			start:         Task{Status: TaskStatusCompleted, CompletedAt: &earlier},
			target:        TaskStatusOnHold,
			wantCompleted: nil,
		},
		{
			name:          "non completed moves stay unstamped",
			start:         Task{Status: TaskStatusPending},
			target:        TaskStatusCancelled,
			wantCompleted: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			task := tc.start
			task.TransitionTo(tc.target, now)

			assert.Equal(t, tc.target, task.Status)
			if tc.wantCompleted == nil {
				assert.Nil(t, task.CompletedAt)
				return
			}
			require.NotNil(t, task.CompletedAt)
			assert.True(t, tc.wantCompleted.Equal(*task.CompletedAt))
		})
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, Task{Status: TaskStatusPending, DueDate: &past}.IsOverdue(now))
	assert.True(t, Task{Status: TaskStatusOnHold, DueDate: &past}.IsOverdue(now))
	assert.False(t, Task{Status: TaskStatusCompleted, DueDate: &past}.IsOverdue(now))
	assert.False(t, Task{Status: TaskStatusCancelled, DueDate: &past}.IsOverdue(now))
	assert.False(t, Task{Status: TaskStatusPending, DueDate: &future}.IsOverdue(now))
	assert.False(t, Task{Status: TaskStatusPending}.IsOverdue(now))
}

func TestEnumValidity(t *testing.T) {
	for _, s := range TaskStatuses {
		assert.True(t, s.Valid(), s)
	}
	for _, p := range TaskPriorities {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, TaskStatus("Completed").Valid())
	assert.False(t, TaskStatus("done").Valid())
	assert.False(t, TaskPriority("urgent").Valid())
}
