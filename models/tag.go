package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultTagColor = "#808080"

type Tag struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"type:varchar(7);not null" json:"color"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (t Tag) EntityID() uuid.UUID { return t.ID }

func (t *Tag) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return err
}

// TaskTag links a task to a tag; the pair is the primary key
type TaskTag struct {
	TaskID uuid.UUID `gorm:"type:char(36);primaryKey" json:"task_id"`
	TagID  uuid.UUID `gorm:"type:char(36);primaryKey;index" json:"tag_id"`
}

func (TaskTag) TableName() string { return "task_tags" }

type TagCreate struct {
	Name  string  `json:"name" validate:"required,min=1,max=100"`
	Color *string `json:"color" validate:"omitempty,tagcolor"`
}

type TagUpdate struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Color *string `json:"color" validate:"omitempty,tagcolor"`
}
