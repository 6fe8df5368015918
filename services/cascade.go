package services

import (
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// deleteTasksCascade removes tasks together with their assignments, comments
// and tag links. Tags and users are left alone.
func deleteTasksCascade(tx *gorm.DB, taskIDs []uuid.UUID) error {
	if len(taskIDs) == 0 {
		return nil
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskComment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskTag{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error
}

// deleteProjectTasks removes every task of the given projects
func deleteProjectTasks(tx *gorm.DB, projectIDs []uuid.UUID) error {
	if len(projectIDs) == 0 {
		return nil
	}
	var taskIDs []uuid.UUID
	if err := tx.Model(&models.Task{}).Where("project_id IN ?", projectIDs).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	return deleteTasksCascade(tx, taskIDs)
}

// deleteProjectsCascade removes projects and everything beneath them
func deleteProjectsCascade(tx *gorm.DB, projectIDs []uuid.UUID) error {
	if len(projectIDs) == 0 {
		return nil
	}
	if err := deleteProjectTasks(tx, projectIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", projectIDs).Delete(&models.Project{}).Error
}

// detachUser applies the user deletion rules: owned projects go, primary
// assignments and assigned_by references are nulled, explicit assignments
// and authored comments go.
func detachUser(tx *gorm.DB, userID uuid.UUID) error {
	var projectIDs []uuid.UUID
	if err := tx.Model(&models.Project{}).Where("owner_id = ?", userID).Pluck("id", &projectIDs).Error; err != nil {
		return err
	}
	if err := deleteProjectsCascade(tx, projectIDs); err != nil {
		return err
	}
	if err := tx.Model(&models.Task{}).Where("assigned_to = ?", userID).Update("assigned_to", nil).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.TaskAssignment{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.TaskAssignment{}).Where("assigned_by = ?", userID).Update("assigned_by", nil).Error; err != nil {
		return err
	}
	return tx.Where("created_by = ?", userID).Delete(&models.TaskComment{}).Error
}

// exists reports whether a row of model with the given id is present
func exists(tx *gorm.DB, model interface{}, id uuid.UUID) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// requireExists returns notFound when the row is absent
func requireExists(tx *gorm.DB, model interface{}, id uuid.UUID, notFound error) error {
	found, err := exists(tx, model, id)
	if err != nil {
		return persistenceError(err)
	}
	if !found {
		return notFound
	}
	return nil
}
