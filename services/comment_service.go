package services

import (
	"time"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentServiceInterface interface {
	CRUDServiceInterface[models.TaskComment, models.CommentCreate, models.CommentUpdate]
	ListByTask(db *database.Database, taskID string, skip, limit int) ([]models.TaskComment, error)
	ListByUser(db *database.Database, userID string, skip, limit int) ([]models.TaskComment, error)
	GetDetail(db *database.Database, id string) (models.CommentDetail, error)
}

type CommentService struct {
	*CRUDService[models.TaskComment, models.CommentCreate, models.CommentUpdate]
}

func NewCommentService() *CommentService {
	s := &CommentService{}
	s.CRUDService = newCRUDService(crudHooks[models.TaskComment, models.CommentCreate, models.CommentUpdate]{
		entity:   "comment",
		notFound: ErrCommentNotFound,
		build:    s.build,
		apply:    s.apply,
		actor:    func(c models.TaskComment) string { return c.CreatedBy.String() },
	})
	return s
}

func (s *CommentService) build(tx *gorm.DB, input models.CommentCreate, now time.Time) (models.TaskComment, error) {
	if err := requireExists(tx, &models.Task{}, input.TaskID, ErrTaskNotFound); err != nil {
		return models.TaskComment{}, err
	}
	if err := requireExists(tx, &models.User{}, input.CreatedBy, ErrUserNotFound); err != nil {
		return models.TaskComment{}, err
	}
	return models.TaskComment{
		TaskID:    input.TaskID,
		CreatedBy: input.CreatedBy,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *CommentService) apply(tx *gorm.DB, current models.TaskComment, input models.CommentUpdate, now time.Time) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	return updates, nil
}

// ListByTask returns the task's comments newest first
func (s *CommentService) ListByTask(db *database.Database, taskID string, skip, limit int) ([]models.TaskComment, error) {
	id, err := parseID(taskID, ErrTaskNotFound)
	if err != nil {
		return nil, err
	}
	if err := requireExists(db.DB, &models.Task{}, id, ErrTaskNotFound); err != nil {
		return nil, err
	}
	return s.listWhere(db, "task_id = ?", id, skip, limit)
}

func (s *CommentService) ListByUser(db *database.Database, userID string, skip, limit int) ([]models.TaskComment, error) {
	id, err := parseID(userID, ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	if err := requireExists(db.DB, &models.User{}, id, ErrUserNotFound); err != nil {
		return nil, err
	}
	return s.listWhere(db, "created_by = ?", id, skip, limit)
}

func (s *CommentService) listWhere(db *database.Database, query string, id uuid.UUID, skip, limit int) ([]models.TaskComment, error) {
	comments := []models.TaskComment{}
	err := db.DB.Where(query, id).
		Scopes(paginate(skip, limit)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, persistenceError(err)
	}
	return comments, nil
}

// GetDetail resolves the comment's author and task
func (s *CommentService) GetDetail(db *database.Database, id string) (models.CommentDetail, error) {
	comment, err := s.Get(db, id)
	if err != nil {
		return models.CommentDetail{}, err
	}

	detail := models.CommentDetail{TaskComment: comment}

	var author models.User
	if err := db.DB.Limit(1).Find(&author, "id = ?", comment.CreatedBy).Error; err != nil {
		return models.CommentDetail{}, persistenceError(err)
	}
	if author.ID != uuid.Nil {
		detail.Author = &author
	}

	var task models.Task
	if err := db.DB.Limit(1).Find(&task, "id = ?", comment.TaskID).Error; err != nil {
		return models.CommentDetail{}, persistenceError(err)
	}
	if task.ID != uuid.Nil {
		detail.Task = &task
	}

	return detail, nil
}

var CommentServiceInstance CommentServiceInterface
