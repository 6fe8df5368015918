package services

import (
	"time"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskServiceInterface interface {
	CRUDServiceInterface[models.Task, models.TaskCreate, models.TaskUpdate]
	MarkCompleted(db *database.Database, id string) (models.Task, error)
	FilterTasks(db *database.Database, filter models.TaskFilter, skip, limit int) ([]models.Task, error)
	GetOverdueTasks(db *database.Database) ([]models.Task, error)
	GetUpcomingTasks(db *database.Database, days int) ([]models.Task, error)
	ListByProject(db *database.Database, projectID string, skip, limit int) ([]models.Task, error)
	ListByAssignee(db *database.Database, userID string, skip, limit int) ([]models.Task, error)
	ListByStatus(db *database.Database, status models.TaskStatus, skip, limit int) ([]models.Task, error)
	ListByPriority(db *database.Database, priority models.TaskPriority, skip, limit int) ([]models.Task, error)
	GetDetail(db *database.Database, id string) (models.TaskDetail, error)
}

type TaskService struct {
	*CRUDService[models.Task, models.TaskCreate, models.TaskUpdate]
}

func NewTaskService() *TaskService {
	s := &TaskService{}
	s.CRUDService = newCRUDService(crudHooks[models.Task, models.TaskCreate, models.TaskUpdate]{
		entity:   "task",
		notFound: ErrTaskNotFound,
		build:    s.build,
		apply:    s.apply,
		cascade: func(tx *gorm.DB, task models.Task) error {
			return deleteTasksCascade(tx, []uuid.UUID{task.ID})
		},
	})
	return s
}

func (s *TaskService) build(tx *gorm.DB, input models.TaskCreate, now time.Time) (models.Task, error) {
	if err := requireExists(tx, &models.Project{}, input.ProjectID, ErrProjectNotFound); err != nil {
		return models.Task{}, err
	}
	if input.AssignedTo != nil {
		if err := requireExists(tx, &models.User{}, *input.AssignedTo, ErrUserNotFound); err != nil {
			return models.Task{}, err
		}
	}

	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		AssignedTo:  input.AssignedTo,
		Priority:    models.TaskPriorityMedium,
		DueDate:     utcPtr(input.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}

	status := models.TaskStatusPending
	if input.Status != nil {
		status = *input.Status
	}
	task.TransitionTo(status, now)

	return task, nil
}

func (s *TaskService) apply(tx *gorm.DB, current models.Task, input models.TaskUpdate, now time.Time) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ProjectID != nil && *input.ProjectID != current.ProjectID {
		if err := requireExists(tx, &models.Project{}, *input.ProjectID, ErrProjectNotFound); err != nil {
			return nil, err
		}
		updates["project_id"] = *input.ProjectID
	}

	switch {
	case input.ClearAssignee:
		updates["assigned_to"] = nil
	case input.AssignedTo != nil:
		if err := requireExists(tx, &models.User{}, *input.AssignedTo, ErrUserNotFound); err != nil {
			return nil, err
		}
		updates["assigned_to"] = *input.AssignedTo
	}

	if input.Priority != nil {
		updates["priority"] = string(*input.Priority)
	}

	switch {
	case input.ClearDueDate:
		updates["due_date"] = nil
	case input.DueDate != nil:
		updates["due_date"] = input.DueDate.UTC()
	}

	if input.Status != nil {
		next := current
		next.TransitionTo(*input.Status, now)
		updates["status"] = string(next.Status)
		if next.CompletedAt == nil {
			updates["completed_at"] = nil
		} else {
			updates["completed_at"] = *next.CompletedAt
		}
	}

	return updates, nil
}

// MarkCompleted goes through the same update path as any other status change
func (s *TaskService) MarkCompleted(db *database.Database, id string) (models.Task, error) {
	completed := models.TaskStatusCompleted
	return s.Update(db, id, models.TaskUpdate{Status: &completed})
}

// FilterTasks with an empty filter pages exactly like List
func (s *TaskService) FilterTasks(db *database.Database, filter models.TaskFilter, skip, limit int) ([]models.Task, error) {
	tasks := []models.Task{}
	err := db.DB.Model(&models.Task{}).
		Scopes(filterScope(filter), paginate(skip, limit)).
		Order("tasks.id").
		Find(&tasks).Error
	if err != nil {
		return nil, persistenceError(err)
	}
	return tasks, nil
}

func (s *TaskService) GetOverdueTasks(db *database.Database) ([]models.Task, error) {
	now := s.now()
	tasks := []models.Task{}
	err := db.DB.Model(&models.Task{}).
		Scopes(overdueScope(now)).
		Order("tasks.due_date ASC").
		Order("tasks.id").
		Find(&tasks).Error
	if err != nil {
		return nil, persistenceError(err)
	}
	return tasks, nil
}

// GetUpcomingTasks lists tasks due in the next days days (7 when days <= 0)
func (s *TaskService) GetUpcomingTasks(db *database.Database, days int) ([]models.Task, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	now := s.now()
	tasks := []models.Task{}
	err := db.DB.Model(&models.Task{}).
		Scopes(upcomingScope(now, days)).
		Order("tasks.due_date ASC").
		Order("tasks.id").
		Find(&tasks).Error
	if err != nil {
		return nil, persistenceError(err)
	}
	return tasks, nil
}

func (s *TaskService) ListByProject(db *database.Database, projectID string, skip, limit int) ([]models.Task, error) {
	id, err := parseID(projectID, ErrProjectNotFound)
	if err != nil {
		return nil, err
	}
	if err := requireExists(db.DB, &models.Project{}, id, ErrProjectNotFound); err != nil {
		return nil, err
	}
	return s.FilterTasks(db, models.TaskFilter{ProjectID: &id}, skip, limit)
}

func (s *TaskService) ListByAssignee(db *database.Database, userID string, skip, limit int) ([]models.Task, error) {
	id, err := parseID(userID, ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	if err := requireExists(db.DB, &models.User{}, id, ErrUserNotFound); err != nil {
		return nil, err
	}
	return s.FilterTasks(db, models.TaskFilter{AssignedTo: &id}, skip, limit)
}

func (s *TaskService) ListByStatus(db *database.Database, status models.TaskStatus, skip, limit int) ([]models.Task, error) {
	if !status.Valid() {
		return nil, newError(ErrValidation, "invalid task status: "+string(status))
	}
	return s.FilterTasks(db, models.TaskFilter{Status: &status}, skip, limit)
}

func (s *TaskService) ListByPriority(db *database.Database, priority models.TaskPriority, skip, limit int) ([]models.Task, error) {
	if !priority.Valid() {
		return nil, newError(ErrValidation, "invalid task priority: "+string(priority))
	}
	return s.FilterTasks(db, models.TaskFilter{Priority: &priority}, skip, limit)
}

// GetDetail loads the task with its project, assignee, tags, explicit
// assignments and comments (newest first).
func (s *TaskService) GetDetail(db *database.Database, id string) (models.TaskDetail, error) {
	task, err := s.Get(db, id)
	if err != nil {
		return models.TaskDetail{}, err
	}

	detail := models.TaskDetail{
		Task:        task,
		Tags:        []models.Tag{},
		Assignments: []models.TaskAssignment{},
		Comments:    []models.TaskComment{},
	}

	var project models.Project
	if err := db.DB.Limit(1).Find(&project, "id = ?", task.ProjectID).Error; err != nil {
		return models.TaskDetail{}, persistenceError(err)
	}
	if project.ID != uuid.Nil {
		detail.Project = &project
	}

	if task.AssignedTo != nil {
		var assignee models.User
		if err := db.DB.Limit(1).Find(&assignee, "id = ?", *task.AssignedTo).Error; err != nil {
			return models.TaskDetail{}, persistenceError(err)
		}
		if assignee.ID != uuid.Nil {
			detail.Assignee = &assignee
		}
	}

	if err := db.DB.Model(&models.Tag{}).
		Joins("JOIN task_tags ON task_tags.tag_id = tags.id").
		Where("task_tags.task_id = ?", task.ID).
		Order("tags.name").
		Find(&detail.Tags).Error; err != nil {
		return models.TaskDetail{}, persistenceError(err)
	}

	if err := db.DB.Where("task_id = ?", task.ID).
		Order("assigned_at").
		Find(&detail.Assignments).Error; err != nil {
		return models.TaskDetail{}, persistenceError(err)
	}

	if err := db.DB.Where("task_id = ?", task.ID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&detail.Comments).Error; err != nil {
		return models.TaskDetail{}, persistenceError(err)
	}

	return detail, nil
}

func parseID(id string, notFound error) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notFound
	}
	return parsed, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

var TaskServiceInstance TaskServiceInterface
