package services

import (
	"time"

	"taskboard-app/taskboard/broker"
	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrashServiceInterface manages an owner's soft-deleted projects
type TrashServiceInterface interface {
	GetTrashedProjects(db *database.Database, ownerID string) ([]models.Project, error)
	RestoreProject(db *database.Database, projectID, ownerID string) (models.Project, error)
	PermanentlyDeleteProject(db *database.Database, projectID, ownerID string) (models.Project, error)
	EmptyTrash(db *database.Database, ownerID string) (int, error)
}

type TrashService struct {
	clock func() time.Time
}

func NewTrashService() *TrashService {
	return &TrashService{}
}

func (s *TrashService) now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

func (s *TrashService) GetTrashedProjects(db *database.Database, ownerID string) ([]models.Project, error) {
	owner, err := parseID(ownerID, ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	projects := []models.Project{}
	if err := db.DB.Where("owner_id = ? AND is_active = ?", owner, false).Order("id").Find(&projects).Error; err != nil {
		return nil, persistenceError(err)
	}
	return projects, nil
}

// trashed loads a soft-deleted project of owner; active or foreign projects
// are not in the owner's trash.
func trashed(tx *gorm.DB, projectID, ownerID string) (models.Project, error) {
	id, err := parseID(projectID, ErrProjectNotFound)
	if err != nil {
		return models.Project{}, err
	}
	owner, err := parseID(ownerID, ErrProjectNotFound)
	if err != nil {
		return models.Project{}, err
	}
	var project models.Project
	if err := tx.Where("id = ? AND owner_id = ? AND is_active = ?", id, owner, false).First(&project).Error; err != nil {
		return models.Project{}, lookupError(err, ErrProjectNotFound)
	}
	return project, nil
}

func (s *TrashService) RestoreProject(db *database.Database, projectID, ownerID string) (models.Project, error) {
	now := s.now()

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Project{}, persistenceError(tx.Error)
	}

	project, err := trashed(tx, projectID, ownerID)
	if err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	if err := tx.Model(&models.Project{}).Where("id = ?", project.ID).
		Updates(map[string]interface{}{"is_active": true, "updated_at": now}).Error; err != nil {
		tx.Rollback()
		return models.Project{}, persistenceError(err)
	}
	project.IsActive = true
	project.UpdatedAt = now

	if err := recordEvent(tx, broker.ProjectRestored, "project", "restore", ownerID, project); err != nil {
		tx.Rollback()
		return models.Project{}, persistenceError(err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Project{}, persistenceError(err)
	}
	return project, nil
}

// PermanentlyDeleteProject hard-deletes a trashed project with its tasks
func (s *TrashService) PermanentlyDeleteProject(db *database.Database, projectID, ownerID string) (models.Project, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Project{}, persistenceError(tx.Error)
	}

	project, err := trashed(tx, projectID, ownerID)
	if err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	if err := deleteProjectsCascade(tx, []uuid.UUID{project.ID}); err != nil {
		tx.Rollback()
		return models.Project{}, persistenceError(err)
	}

	if err := recordEvent(tx, broker.ProjectDeleted, "project", "delete", ownerID, project); err != nil {
		tx.Rollback()
		return models.Project{}, persistenceError(err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Project{}, persistenceError(err)
	}
	return project, nil
}

// EmptyTrash hard-deletes every trashed project of owner and returns how many
// were removed.
func (s *TrashService) EmptyTrash(db *database.Database, ownerID string) (int, error) {
	owner, err := parseID(ownerID, ErrUserNotFound)
	if err != nil {
		return 0, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return 0, persistenceError(tx.Error)
	}

	var projects []models.Project
	if err := tx.Where("owner_id = ? AND is_active = ?", owner, false).Order("id").Find(&projects).Error; err != nil {
		tx.Rollback()
		return 0, persistenceError(err)
	}

	ids := make([]uuid.UUID, 0, len(projects))
	for _, project := range projects {
		ids = append(ids, project.ID)
	}
	if err := deleteProjectsCascade(tx, ids); err != nil {
		tx.Rollback()
		return 0, persistenceError(err)
	}

	for _, project := range projects {
		if err := recordEvent(tx, broker.ProjectDeleted, "project", "delete", ownerID, project); err != nil {
			tx.Rollback()
			return 0, persistenceError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return 0, persistenceError(err)
	}
	return len(projects), nil
}

var TrashServiceInstance TrashServiceInterface
