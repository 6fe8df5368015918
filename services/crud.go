package services

import (
	"time"

	"taskboard-app/taskboard/broker"
	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is any persisted model addressable by its UUID
type Entity interface {
	EntityID() uuid.UUID
}

// CRUDServiceInterface is the contract every entity service exposes. T is the
// stored model, C its create input and U its partial update input.
type CRUDServiceInterface[T Entity, C any, U any] interface {
	Create(db *database.Database, input C) (T, error)
	Get(db *database.Database, id string) (T, error)
	List(db *database.Database, skip, limit int) ([]T, error)
	Update(db *database.Database, id string, input U) (T, error)
	Delete(db *database.Database, id string) (T, error)
	Count(db *database.Database) (int64, error)
}

// crudHooks holds the per-entity behavior plugged into the generic core.
// build and apply run inside the write transaction and must return
// classified errors.
type crudHooks[T Entity, C any, U any] struct {
	entity   string
	notFound error

	// build turns a validated create input into a new row
	build func(tx *gorm.DB, input C, now time.Time) (T, error)
	// apply returns the column updates for a validated partial input
	apply func(tx *gorm.DB, current T, input U, now time.Time) (map[string]interface{}, error)
	// cascade removes or detaches dependent rows before current is deleted
	cascade func(tx *gorm.DB, current T) error
	// actor names who performed a write on the entity, if known
	actor func(entity T) string
}

// CRUDService implements CRUDServiceInterface on top of gorm. Each mutating
// call runs in a single transaction together with its outbox event.
type CRUDService[T Entity, C any, U any] struct {
	hooks crudHooks[T, C, U]
	clock func() time.Time
}

func newCRUDService[T Entity, C any, U any](hooks crudHooks[T, C, U]) *CRUDService[T, C, U] {
	return &CRUDService[T, C, U]{hooks: hooks}
}

// now is captured once per call so every predicate in the call agrees on it
func (s *CRUDService[T, C, U]) now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

func (s *CRUDService[T, C, U]) actorOf(entity T) string {
	if s.hooks.actor == nil {
		return ""
	}
	return s.hooks.actor(entity)
}

func (s *CRUDService[T, C, U]) Create(db *database.Database, input C) (T, error) {
	var zero T
	if err := models.Validate(input); err != nil {
		return zero, validationError(err)
	}
	now := s.now()

	tx := db.DB.Begin()
	if tx.Error != nil {
		return zero, persistenceError(tx.Error)
	}

	entity, err := s.hooks.build(tx, input, now)
	if err != nil {
		tx.Rollback()
		return zero, err
	}

	if err := tx.Create(&entity).Error; err != nil {
		tx.Rollback()
		return zero, persistenceError(err)
	}

	if err := recordEvent(tx, broker.EventType(s.hooks.entity+".created"), s.hooks.entity, "create", s.actorOf(entity), entity); err != nil {
		tx.Rollback()
		return zero, persistenceError(err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return zero, persistenceError(err)
	}

	return entity, nil
}

func (s *CRUDService[T, C, U]) Get(db *database.Database, id string) (T, error) {
	return s.find(db.DB, id)
}

// find loads one row by id; ids that are not UUIDs cannot name a row
func (s *CRUDService[T, C, U]) find(tx *gorm.DB, id string) (T, error) {
	var entity T
	key, err := uuid.Parse(id)
	if err != nil {
		return entity, s.hooks.notFound
	}
	if err := tx.First(&entity, "id = ?", key).Error; err != nil {
		return entity, lookupError(err, s.hooks.notFound)
	}
	return entity, nil
}

// List returns one page in insertion order. Ids are time-ordered, so ordering
// by id is stable and follows creation.
func (s *CRUDService[T, C, U]) List(db *database.Database, skip, limit int) ([]T, error) {
	items := []T{}
	if err := db.DB.Scopes(paginate(skip, limit)).Order("id").Find(&items).Error; err != nil {
		return nil, persistenceError(err)
	}
	return items, nil
}

func (s *CRUDService[T, C, U]) Update(db *database.Database, id string, input U) (T, error) {
	var zero T
	if err := models.Validate(input); err != nil {
		return zero, validationError(err)
	}
	now := s.now()

	tx := db.DB.Begin()
	if tx.Error != nil {
		return zero, persistenceError(tx.Error)
	}

	current, err := s.find(tx, id)
	if err != nil {
		tx.Rollback()
		return zero, err
	}

	updates, err := s.hooks.apply(tx, current, input, now)
	if err != nil {
		tx.Rollback()
		return zero, err
	}
	updates["updated_at"] = now

	if err := tx.Model(new(T)).Where("id = ?", current.EntityID()).Updates(updates).Error; err != nil {
		tx.Rollback()
		return zero, persistenceError(err)
	}

	updated, err := s.find(tx, current.EntityID().String())
	if err != nil {
		tx.Rollback()
		return zero, err
	}

	if err := recordEvent(tx, broker.EventType(s.hooks.entity+".updated"), s.hooks.entity, "update", s.actorOf(updated), updated); err != nil {
		tx.Rollback()
		return zero, persistenceError(err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return zero, persistenceError(err)
	}

	return updated, nil
}

// Delete hard-deletes the row after running the entity's cascade and returns
// the row as it was.
func (s *CRUDService[T, C, U]) Delete(db *database.Database, id string) (T, error) {
	var zero T

	tx := db.DB.Begin()
	if tx.Error != nil {
		return zero, persistenceError(tx.Error)
	}

	current, err := s.find(tx, id)
	if err != nil {
		tx.Rollback()
		return zero, err
	}

	if s.hooks.cascade != nil {
		if err := s.hooks.cascade(tx, current); err != nil {
			tx.Rollback()
			return zero, persistenceError(err)
		}
	}

	if err := tx.Where("id = ?", current.EntityID()).Delete(new(T)).Error; err != nil {
		tx.Rollback()
		return zero, persistenceError(err)
	}

	if err := recordEvent(tx, broker.EventType(s.hooks.entity+".deleted"), s.hooks.entity, "delete", s.actorOf(current), current); err != nil {
		tx.Rollback()
		return zero, persistenceError(err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return zero, persistenceError(err)
	}

	return current, nil
}

func (s *CRUDService[T, C, U]) Count(db *database.Database) (int64, error) {
	var count int64
	if err := db.DB.Model(new(T)).Count(&count).Error; err != nil {
		return 0, persistenceError(err)
	}
	return count, nil
}
