package testutils

import (
	"database/sql/driver"
	"sync"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

// PendingEvents returns the outbox rows not yet dispatched, oldest first
func PendingEvents(db *database.Database) ([]models.Event, error) {
	var events []models.Event
	err := db.DB.Where("dispatched = ?", false).Order("id").Find(&events).Error
	return events, err
}

// EventNames lists the event names of the outbox rows, oldest first
func EventNames(db *database.Database) ([]string, error) {
	var names []string
	err := db.DB.Model(&models.Event{}).Order("id").Pluck("event", &names).Error
	return names, err
}

// RecordingPublisher captures published messages. Set Err to make Publish fail.
type RecordingPublisher struct {
	mu       sync.Mutex
	Subjects []string
	Payloads [][]byte
	Err      error
	Closed   bool
}

func (p *RecordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Subjects = append(p.Subjects, subject)
	p.Payloads = append(p.Payloads, data)
	return nil
}

func (p *RecordingPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
}

func (p *RecordingPublisher) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.Subjects...)
}

func NewResult(lastInsertID, rowsAffected int64) driver.Result {
	return sqlmock.NewResult(lastInsertID, rowsAffected)
}
