package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"taskboard-app/taskboard/broker"
	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"go.uber.org/zap"
)

type EventHandlerServiceInterface interface {
	Start(ctx context.Context)
	Stop()
	ProcessPendingEvents() (int, error)
}

// EventHandlerService publishes outbox rows to the broker in insertion order
// and marks them dispatched. A row whose publish fails stays pending and
// blocks the rows behind it until the next tick.
type EventHandlerService struct {
	db        *database.Database
	publisher broker.Publisher
	prefix    string
	interval  time.Duration
	batchSize int

	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewEventHandlerService(db *database.Database, publisher broker.Publisher, prefix string, interval time.Duration, batchSize int) *EventHandlerService {
	if interval <= 0 {
		interval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &EventHandlerService{
		db:        db,
		publisher: publisher,
		prefix:    prefix,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (s *EventHandlerService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.isRunning = true

	go s.loop(ctx, s.done)
	zap.L().Info("event dispatcher started", zap.Duration("interval", s.interval))
}

func (s *EventHandlerService) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cancel()
	done := s.done
	s.mu.Unlock()

	<-done
	zap.L().Info("event dispatcher stopped")
}

func (s *EventHandlerService) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.ProcessPendingEvents(); err != nil {
				zap.L().Warn("event dispatch incomplete", zap.Int("dispatched", n), zap.Error(err))
			}
		}
	}
}

// ProcessPendingEvents dispatches one batch and returns how many rows were
// published.
func (s *EventHandlerService) ProcessPendingEvents() (int, error) {
	var events []models.Event
	if err := s.db.DB.Where("dispatched = ?", false).
		Order("id").
		Limit(s.batchSize).
		Find(&events).Error; err != nil {
		return 0, persistenceError(err)
	}

	if len(events) > 0 {
		zap.L().Debug("pending events", zap.Int("count", len(events)))
	}

	for i, event := range events {
		if err := s.dispatchEvent(event); err != nil {
			return i, err
		}
	}
	return len(events), nil
}

func (s *EventHandlerService) dispatchEvent(event models.Event) error {
	message, err := models.NewEventMessage(event)
	if err != nil {
		zap.L().Error("undecodable event data", zap.String("event_id", event.ID.String()), zap.Error(err))
		return err
	}

	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	subject := broker.Subject(s.prefix, event.Event)
	if err := s.publisher.Publish(subject, data); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.db.DB.Model(&models.Event{}).Where("id = ?", event.ID).Updates(map[string]interface{}{
		"dispatched":    true,
		"dispatched_at": now,
		"status":        models.EventStatusCompleted,
	}).Error; err != nil {
		return persistenceError(err)
	}

	zap.L().Debug("event dispatched",
		zap.String("event_id", event.ID.String()),
		zap.String("subject", subject),
		zap.String("entity", event.Entity))
	return nil
}

var EventHandlerServiceInstance EventHandlerServiceInterface
