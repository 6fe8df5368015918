package services

import (
	"taskboard-app/taskboard/broker"
	"taskboard-app/taskboard/models"

	"gorm.io/gorm"
)

// recordEvent appends an outbox event to the caller's transaction
func recordEvent(tx *gorm.DB, name broker.EventType, entity, operation, actorID string, data interface{}) error {
	event, err := models.NewEvent(string(name), entity, operation, actorID, data)
	if err != nil {
		return err
	}
	return tx.Create(event).Error
}
