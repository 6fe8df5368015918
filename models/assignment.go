package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskAssignment records an explicit assignment of a user to a task, separate
// from the task's single primary assignee.
type TaskAssignment struct {
	ID             uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	TaskID         uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:uq_task_user_assignment" json:"task_id"`
	UserID         uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:uq_task_user_assignment;index" json:"user_id"`
	AssignedBy     *uuid.UUID `gorm:"type:char(36)" json:"assigned_by"`
	AssignedAt     time.Time  `gorm:"not null" json:"assigned_at"`
	HoursAllocated *float64   `json:"hours_allocated"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

func (a TaskAssignment) EntityID() uuid.UUID { return a.ID }

func (a *TaskAssignment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return err
}

type AssignmentCreate struct {
	TaskID         uuid.UUID  `json:"task_id" validate:"required"`
	UserID         uuid.UUID  `json:"user_id" validate:"required"`
	AssignedBy     *uuid.UUID `json:"assigned_by"`
	HoursAllocated *float64   `json:"hours_allocated" validate:"omitempty,gte=0"`
}

type AssignmentUpdate struct {
	HoursAllocated *float64 `json:"hours_allocated" validate:"omitempty,gte=0"`
	ClearHours     bool     `json:"clear_hours"`
}
