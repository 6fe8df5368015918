package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskComment struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	TaskID    uuid.UUID `gorm:"type:char(36);not null;index" json:"task_id"`
	CreatedBy uuid.UUID `gorm:"type:char(36);not null;index" json:"created_by"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (c TaskComment) EntityID() uuid.UUID { return c.ID }

func (c *TaskComment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return err
}

type CommentCreate struct {
	TaskID    uuid.UUID `json:"task_id" validate:"required"`
	CreatedBy uuid.UUID `json:"created_by" validate:"required"`
	Content   string    `json:"content" validate:"required,min=1,max=5000"`
}

type CommentUpdate struct {
	Content *string `json:"content" validate:"omitempty,min=1,max=5000"`
}
