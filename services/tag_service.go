package services

import (
	"time"

	"taskboard-app/taskboard/broker"
	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagServiceInterface interface {
	CRUDServiceInterface[models.Tag, models.TagCreate, models.TagUpdate]
	GetByName(db *database.Database, name string) (models.Tag, error)
	GetWithTasks(db *database.Database, id string) (models.TagWithTasks, error)
	ListTaskTags(db *database.Database, taskID string) ([]models.Tag, error)
	AttachTag(db *database.Database, tagID, taskID string) error
	DetachTag(db *database.Database, tagID, taskID string) error
}

type TagService struct {
	*CRUDService[models.Tag, models.TagCreate, models.TagUpdate]
}

func NewTagService() *TagService {
	s := &TagService{}
	s.CRUDService = newCRUDService(crudHooks[models.Tag, models.TagCreate, models.TagUpdate]{
		entity:   "tag",
		notFound: ErrTagNotFound,
		build:    s.build,
		apply:    s.apply,
		cascade: func(tx *gorm.DB, tag models.Tag) error {
			return tx.Where("tag_id = ?", tag.ID).Delete(&models.TaskTag{}).Error
		},
	})
	return s
}

func (s *TagService) build(tx *gorm.DB, input models.TagCreate, now time.Time) (models.Tag, error) {
	if err := ensureUnique(tx, &models.Tag{}, "name", input.Name, nil, ErrTagNameTaken); err != nil {
		return models.Tag{}, err
	}
	tag := models.Tag{
		Name:      input.Name,
		Color:     models.DefaultTagColor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Color != nil {
		tag.Color = *input.Color
	}
	return tag, nil
}

func (s *TagService) apply(tx *gorm.DB, current models.Tag, input models.TagUpdate, now time.Time) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if input.Name != nil && *input.Name != current.Name {
		if err := ensureUnique(tx, &models.Tag{}, "name", *input.Name, &current.ID, ErrTagNameTaken); err != nil {
			return nil, err
		}
		updates["name"] = *input.Name
	}
	if input.Color != nil {
		updates["color"] = *input.Color
	}
	return updates, nil
}

func (s *TagService) GetByName(db *database.Database, name string) (models.Tag, error) {
	var tag models.Tag
	if err := db.DB.Where("name = ?", name).First(&tag).Error; err != nil {
		return models.Tag{}, lookupError(err, ErrTagNotFound)
	}
	return tag, nil
}

func (s *TagService) GetWithTasks(db *database.Database, id string) (models.TagWithTasks, error) {
	tag, err := s.Get(db, id)
	if err != nil {
		return models.TagWithTasks{}, err
	}

	result := models.TagWithTasks{Tag: tag, Tasks: []models.Task{}}
	if err := db.DB.Model(&models.Task{}).
		Joins("JOIN task_tags ON task_tags.task_id = tasks.id").
		Where("task_tags.tag_id = ?", tag.ID).
		Order("tasks.id").
		Find(&result.Tasks).Error; err != nil {
		return models.TagWithTasks{}, persistenceError(err)
	}
	return result, nil
}

func (s *TagService) ListTaskTags(db *database.Database, taskID string) ([]models.Tag, error) {
	id, err := parseID(taskID, ErrTaskNotFound)
	if err != nil {
		return nil, err
	}
	if err := requireExists(db.DB, &models.Task{}, id, ErrTaskNotFound); err != nil {
		return nil, err
	}

	tags := []models.Tag{}
	if err := db.DB.Model(&models.Tag{}).
		Joins("JOIN task_tags ON task_tags.tag_id = tags.id").
		Where("task_tags.task_id = ?", id).
		Order("tags.name").
		Find(&tags).Error; err != nil {
		return nil, persistenceError(err)
	}
	return tags, nil
}

// AttachTag links tag and task. Attaching an existing link is a no-op; a
// missing tag or task fails with ErrTagOrTaskNotFound before any write.
func (s *TagService) AttachTag(db *database.Database, tagID, taskID string) error {
	tagKey, err := parseID(tagID, ErrTagOrTaskNotFound)
	if err != nil {
		return err
	}
	taskKey, err := parseID(taskID, ErrTagOrTaskNotFound)
	if err != nil {
		return err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return persistenceError(tx.Error)
	}

	if err := requireExists(tx, &models.Tag{}, tagKey, ErrTagOrTaskNotFound); err != nil {
		tx.Rollback()
		return err
	}
	if err := requireExists(tx, &models.Task{}, taskKey, ErrTagOrTaskNotFound); err != nil {
		tx.Rollback()
		return err
	}

	link := models.TaskTag{TaskID: taskKey, TagID: tagKey}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
	if result.Error != nil {
		tx.Rollback()
		return persistenceError(result.Error)
	}

	if result.RowsAffected > 0 {
		if err := recordEvent(tx, broker.TagAttached, "tag", "attach", "", link); err != nil {
			tx.Rollback()
			return persistenceError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return persistenceError(err)
	}
	return nil
}

// DetachTag removes the link if present. Only the task has to exist; a
// missing link is not an error.
func (s *TagService) DetachTag(db *database.Database, tagID, taskID string) error {
	taskKey, err := parseID(taskID, ErrTaskNotFound)
	if err != nil {
		return err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return persistenceError(tx.Error)
	}

	if err := requireExists(tx, &models.Task{}, taskKey, ErrTaskNotFound); err != nil {
		tx.Rollback()
		return err
	}

	tagKey, err := uuid.Parse(tagID)
	if err != nil {
		// an id that is not a UUID cannot be linked
		if err := tx.Commit().Error; err != nil {
			return persistenceError(err)
		}
		return nil
	}

	link := models.TaskTag{TaskID: taskKey, TagID: tagKey}
	result := tx.Where("task_id = ? AND tag_id = ?", taskKey, tagKey).Delete(&models.TaskTag{})
	if result.Error != nil {
		tx.Rollback()
		return persistenceError(result.Error)
	}

	if result.RowsAffected > 0 {
		if err := recordEvent(tx, broker.TagDetached, "tag", "detach", "", link); err != nil {
			tx.Rollback()
			return persistenceError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return persistenceError(err)
	}
	return nil
}

var TagServiceInstance TagServiceInterface
