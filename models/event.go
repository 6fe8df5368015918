package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventStatusPending   = "pending"
	EventStatusCompleted = "completed"
)

// Event is an outbox row written in the same transaction as the change it
// describes and published later by the event dispatcher.
type Event struct {
	ID           uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	Event        string         `gorm:"type:varchar(100);not null" json:"event"`
	Version      int            `gorm:"not null" json:"version"`
	Entity       string         `gorm:"type:varchar(50);not null" json:"entity"`
	Operation    string         `gorm:"type:varchar(50);not null" json:"operation"`
	ActorID      string         `gorm:"type:varchar(36)" json:"actor_id,omitempty"`
	Timestamp    time.Time      `gorm:"not null" json:"timestamp"`
	Data         datatypes.JSON `gorm:"not null" json:"data"`
	Status       string         `gorm:"type:varchar(20);not null" json:"status"`
	Dispatched   bool           `gorm:"not null;index" json:"dispatched"`
	DispatchedAt *time.Time     `json:"dispatched_at,omitempty"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID, err = uuid.NewV7()
	}
	return err
}

func NewEvent(event, entity, operation, actorID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		Event:     event,
		Version:   1,
		Entity:    entity,
		Operation: operation,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Data:      datatypes.JSON(dataBytes),
		Status:    EventStatusPending,
	}, nil
}
