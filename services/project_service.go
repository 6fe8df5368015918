package services

import (
	"time"

	"taskboard-app/taskboard/broker"
	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectServiceInterface interface {
	CRUDServiceInterface[models.Project, models.ProjectCreate, models.ProjectUpdate]
	GetDetail(db *database.Database, id string) (models.ProjectDetail, error)
	ListByOwner(db *database.Database, ownerID string, skip, limit int) ([]models.Project, error)
	ListActive(db *database.Database, skip, limit int) ([]models.Project, error)
	SoftDelete(db *database.Database, id string) (models.Project, error)
	Restore(db *database.Database, id string) (models.Project, error)
}

type ProjectService struct {
	*CRUDService[models.Project, models.ProjectCreate, models.ProjectUpdate]
}

func NewProjectService() *ProjectService {
	s := &ProjectService{}
	s.CRUDService = newCRUDService(crudHooks[models.Project, models.ProjectCreate, models.ProjectUpdate]{
		entity:   "project",
		notFound: ErrProjectNotFound,
		build:    s.build,
		apply:    s.apply,
		cascade: func(tx *gorm.DB, project models.Project) error {
			return deleteProjectTasks(tx, []uuid.UUID{project.ID})
		},
		actor: func(project models.Project) string { return project.OwnerID.String() },
	})
	return s
}

func (s *ProjectService) build(tx *gorm.DB, input models.ProjectCreate, now time.Time) (models.Project, error) {
	if err := requireExists(tx, &models.User{}, input.OwnerID, ErrUserNotFound); err != nil {
		return models.Project{}, err
	}
	return models.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *ProjectService) apply(tx *gorm.DB, current models.Project, input models.ProjectUpdate, now time.Time) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	return updates, nil
}

// GetDetail resolves the owner and task counts. Soft-deleted projects are
// still returned.
func (s *ProjectService) GetDetail(db *database.Database, id string) (models.ProjectDetail, error) {
	project, err := s.Get(db, id)
	if err != nil {
		return models.ProjectDetail{}, err
	}

	detail := models.ProjectDetail{Project: project}

	var owner models.User
	if err := db.DB.Limit(1).Find(&owner, "id = ?", project.OwnerID).Error; err != nil {
		return models.ProjectDetail{}, persistenceError(err)
	}
	if owner.ID != uuid.Nil {
		detail.Owner = &owner
	}

	if err := db.DB.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&detail.TaskCount).Error; err != nil {
		return models.ProjectDetail{}, persistenceError(err)
	}
	if err := db.DB.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", project.ID, string(models.TaskStatusCompleted)).
		Count(&detail.CompletedCount).Error; err != nil {
		return models.ProjectDetail{}, persistenceError(err)
	}

	return detail, nil
}

// ListByOwner includes inactive projects
func (s *ProjectService) ListByOwner(db *database.Database, ownerID string, skip, limit int) ([]models.Project, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	projects := []models.Project{}
	if err := db.DB.Where("owner_id = ?", owner).Scopes(paginate(skip, limit)).Order("id").Find(&projects).Error; err != nil {
		return nil, persistenceError(err)
	}
	return projects, nil
}

func (s *ProjectService) ListActive(db *database.Database, skip, limit int) ([]models.Project, error) {
	projects := []models.Project{}
	if err := db.DB.Where("is_active = ?", true).Scopes(paginate(skip, limit)).Order("id").Find(&projects).Error; err != nil {
		return nil, persistenceError(err)
	}
	return projects, nil
}

// SoftDelete hides the project from active listings and keeps its tasks
func (s *ProjectService) SoftDelete(db *database.Database, id string) (models.Project, error) {
	return s.setActive(db, id, false, broker.ProjectSoftDeleted, "soft_delete")
}

func (s *ProjectService) Restore(db *database.Database, id string) (models.Project, error) {
	return s.setActive(db, id, true, broker.ProjectRestored, "restore")
}

func (s *ProjectService) setActive(db *database.Database, id string, active bool, eventName broker.EventType, operation string) (models.Project, error) {
	now := s.now()

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Project{}, persistenceError(tx.Error)
	}

	project, err := s.find(tx, id)
	if err != nil {
		tx.Rollback()
		return models.Project{}, err
	}

	if err := tx.Model(&models.Project{}).Where("id = ?", project.ID).
		Updates(map[string]interface{}{"is_active": active, "updated_at": now}).Error; err != nil {
		tx.Rollback()
		return models.Project{}, persistenceError(err)
	}
	project.IsActive = active
	project.UpdatedAt = now

	if err := recordEvent(tx, eventName, "project", operation, project.OwnerID.String(), project); err != nil {
		tx.Rollback()
		return models.Project{}, persistenceError(err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Project{}, persistenceError(err)
	}

	return project, nil
}

var ProjectServiceInstance ProjectServiceInterface
