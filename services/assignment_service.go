package services

import (
	"time"

	"taskboard-app/taskboard/broker"
	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentServiceInterface interface {
	CRUDServiceInterface[models.TaskAssignment, models.AssignmentCreate, models.AssignmentUpdate]
	CreateAssignment(db *database.Database, taskID, userID uuid.UUID, assignedBy *uuid.UUID, hoursAllocated *float64) (models.TaskAssignment, error)
	RemoveAssignment(db *database.Database, taskID, userID string) (models.TaskAssignment, error)
	ListTaskAssignments(db *database.Database, taskID string) ([]models.AssignmentDetail, error)
	ListUserAssignments(db *database.Database, userID string) ([]models.AssignmentDetail, error)
}

type AssignmentService struct {
	*CRUDService[models.TaskAssignment, models.AssignmentCreate, models.AssignmentUpdate]
}

func NewAssignmentService() *AssignmentService {
	s := &AssignmentService{}
	s.CRUDService = newCRUDService(crudHooks[models.TaskAssignment, models.AssignmentCreate, models.AssignmentUpdate]{
		entity:   "assignment",
		notFound: ErrAssignmentNotFound,
		build:    s.build,
		apply:    s.apply,
		actor: func(a models.TaskAssignment) string {
			if a.AssignedBy == nil {
				return ""
			}
			return a.AssignedBy.String()
		},
	})
	return s
}

// build rejects a second assignment of the same user to the same task. The
// unique index backs this up for concurrent writers.
func (s *AssignmentService) build(tx *gorm.DB, input models.AssignmentCreate, now time.Time) (models.TaskAssignment, error) {
	if err := requireExists(tx, &models.Task{}, input.TaskID, ErrTaskNotFound); err != nil {
		return models.TaskAssignment{}, err
	}
	if err := requireExists(tx, &models.User{}, input.UserID, ErrUserNotFound); err != nil {
		return models.TaskAssignment{}, err
	}
	if input.AssignedBy != nil {
		if err := requireExists(tx, &models.User{}, *input.AssignedBy, ErrUserNotFound); err != nil {
			return models.TaskAssignment{}, err
		}
	}

	var count int64
	if err := tx.Model(&models.TaskAssignment{}).
		Where("task_id = ? AND user_id = ?", input.TaskID, input.UserID).
		Count(&count).Error; err != nil {
		return models.TaskAssignment{}, persistenceError(err)
	}
	if count > 0 {
		return models.TaskAssignment{}, ErrAlreadyAssigned
	}

	return models.TaskAssignment{
		TaskID:         input.TaskID,
		UserID:         input.UserID,
		AssignedBy:     input.AssignedBy,
		AssignedAt:     now,
		HoursAllocated: input.HoursAllocated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (s *AssignmentService) apply(tx *gorm.DB, current models.TaskAssignment, input models.AssignmentUpdate, now time.Time) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	switch {
	case input.ClearHours:
		updates["hours_allocated"] = nil
	case input.HoursAllocated != nil:
		updates["hours_allocated"] = *input.HoursAllocated
	}
	return updates, nil
}

func (s *AssignmentService) CreateAssignment(db *database.Database, taskID, userID uuid.UUID, assignedBy *uuid.UUID, hoursAllocated *float64) (models.TaskAssignment, error) {
	assignment, err := s.Create(db, models.AssignmentCreate{
		TaskID:         taskID,
		UserID:         userID,
		AssignedBy:     assignedBy,
		HoursAllocated: hoursAllocated,
	})
	if err == ErrDuplicate {
		// the unique index caught a concurrent duplicate
		return assignment, ErrAlreadyAssigned
	}
	return assignment, err
}

// RemoveAssignment deletes the (task, user) assignment
func (s *AssignmentService) RemoveAssignment(db *database.Database, taskID, userID string) (models.TaskAssignment, error) {
	taskKey, err := parseID(taskID, ErrAssignmentNotFound)
	if err != nil {
		return models.TaskAssignment{}, err
	}
	userKey, err := parseID(userID, ErrAssignmentNotFound)
	if err != nil {
		return models.TaskAssignment{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.TaskAssignment{}, persistenceError(tx.Error)
	}

	var assignment models.TaskAssignment
	if err := tx.Where("task_id = ? AND user_id = ?", taskKey, userKey).First(&assignment).Error; err != nil {
		tx.Rollback()
		return models.TaskAssignment{}, lookupError(err, ErrAssignmentNotFound)
	}

	if err := tx.Where("id = ?", assignment.ID).Delete(&models.TaskAssignment{}).Error; err != nil {
		tx.Rollback()
		return models.TaskAssignment{}, persistenceError(err)
	}

	if err := recordEvent(tx, broker.AssignmentDeleted, "assignment", "delete", "", assignment); err != nil {
		tx.Rollback()
		return models.TaskAssignment{}, persistenceError(err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.TaskAssignment{}, persistenceError(err)
	}

	return assignment, nil
}

// ListTaskAssignments returns the task's assignments with each user resolved
func (s *AssignmentService) ListTaskAssignments(db *database.Database, taskID string) ([]models.AssignmentDetail, error) {
	id, err := parseID(taskID, ErrTaskNotFound)
	if err != nil {
		return nil, err
	}
	if err := requireExists(db.DB, &models.Task{}, id, ErrTaskNotFound); err != nil {
		return nil, err
	}

	var assignments []models.TaskAssignment
	if err := db.DB.Where("task_id = ?", id).Order("assigned_at").Order("id").Find(&assignments).Error; err != nil {
		return nil, persistenceError(err)
	}

	userIDs := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		userIDs = append(userIDs, a.UserID)
	}
	users, err := usersByID(db.DB, userIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.AssignmentDetail, 0, len(assignments))
	for _, a := range assignments {
		detail := models.AssignmentDetail{TaskAssignment: a}
		if user, ok := users[a.UserID]; ok {
			detail.User = &user
		}
		details = append(details, detail)
	}
	return details, nil
}

// ListUserAssignments returns the user's assignments with each task resolved
func (s *AssignmentService) ListUserAssignments(db *database.Database, userID string) ([]models.AssignmentDetail, error) {
	id, err := parseID(userID, ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	if err := requireExists(db.DB, &models.User{}, id, ErrUserNotFound); err != nil {
		return nil, err
	}

	var assignments []models.TaskAssignment
	if err := db.DB.Where("user_id = ?", id).Order("assigned_at").Order("id").Find(&assignments).Error; err != nil {
		return nil, persistenceError(err)
	}

	taskIDs := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		taskIDs = append(taskIDs, a.TaskID)
	}
	tasks, err := tasksByID(db.DB, taskIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.AssignmentDetail, 0, len(assignments))
	for _, a := range assignments {
		detail := models.AssignmentDetail{TaskAssignment: a}
		if task, ok := tasks[a.TaskID]; ok {
			detail.Task = &task
		}
		details = append(details, detail)
	}
	return details, nil
}

func usersByID(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]models.User, error) {
	byID := make(map[uuid.UUID]models.User, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var users []models.User
	if err := tx.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, persistenceError(err)
	}
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func tasksByID(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]models.Task, error) {
	byID := make(map[uuid.UUID]models.Task, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var tasks []models.Task
	if err := tx.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, persistenceError(err)
	}
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return byID, nil
}

func projectsByID(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]models.Project, error) {
	byID := make(map[uuid.UUID]models.Project, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var projects []models.Project
	if err := tx.Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, persistenceError(err)
	}
	for _, p := range projects {
		byID[p.ID] = p
	}
	return byID, nil
}

var AssignmentServiceInstance AssignmentServiceInterface
