package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
	TaskStatusOnHold     TaskStatus = "on_hold"
)

// TaskStatuses lists every status in declaration order
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
	TaskStatusOnHold,
}

// Valid reports whether s is one of the declared statuses
func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// TaskPriority ranks how urgent a task is
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// TaskPriorities lists every priority from lowest to highest
var TaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityCritical,
}

func (p TaskPriority) Valid() bool {
	for _, priority := range TaskPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uuid.UUID    `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	ProjectID   uuid.UUID    `gorm:"type:char(36);not null;index" json:"project_id"`
	AssignedTo  *uuid.UUID   `gorm:"type:char(36);index" json:"assigned_to"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;index" json:"priority"`
	DueDate     *time.Time   `gorm:"index" json:"due_date"`
	CompletedAt *time.Time   `json:"completed_at"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

func (t Task) EntityID() uuid.UUID { return t.ID }

// BeforeCreate assigns a time-ordered id so primary key order follows insertion order
func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return err
}

// TransitionTo is the only place a task's status and completion stamp change.
// Entering completed stamps CompletedAt with now, leaving it clears the stamp,
// and re-entering completed from completed keeps the original stamp.
func (t *Task) TransitionTo(status TaskStatus, now time.Time) {
	if status == TaskStatusCompleted {
		if t.Status != TaskStatusCompleted || t.CompletedAt == nil {
			stamp := now
			t.CompletedAt = &stamp
		}
	} else {
		t.CompletedAt = nil
	}
	t.Status = status
}

// IsOverdue mirrors the overdue predicate used by the task queries
func (t Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

type TaskCreate struct {
	Title       string        `json:"title" validate:"required,min=1,max=255"`
	Description string        `json:"description"`
	ProjectID   uuid.UUID     `json:"project_id" validate:"required"`
	AssignedTo  *uuid.UUID    `json:"assigned_to"`
	Status      *TaskStatus   `json:"status" validate:"omitempty,taskstatus"`
	Priority    *TaskPriority `json:"priority" validate:"omitempty,taskpriority"`
	DueDate     *time.Time    `json:"due_date"`
}

// TaskUpdate carries optional fields; ClearAssignee and ClearDueDate null the
// matching column since a nil pointer means "leave untouched".
type TaskUpdate struct {
	Title         *string       `json:"title" validate:"omitempty,min=1,max=255"`
	Description   *string       `json:"description"`
	ProjectID     *uuid.UUID    `json:"project_id"`
	AssignedTo    *uuid.UUID    `json:"assigned_to"`
	ClearAssignee bool          `json:"clear_assignee"`
	Status        *TaskStatus   `json:"status" validate:"omitempty,taskstatus"`
	Priority      *TaskPriority `json:"priority" validate:"omitempty,taskpriority"`
	DueDate       *time.Time    `json:"due_date"`
	ClearDueDate  bool          `json:"clear_due_date"`
}

// TaskFilter selects tasks by any conjunction of the non-nil fields
type TaskFilter struct {
	ProjectID  *uuid.UUID
	Status     *TaskStatus
	Priority   *TaskPriority
	AssignedTo *uuid.UUID
}
