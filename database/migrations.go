package database

import (
	"taskboard-app/taskboard/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table the service owns, parents before children
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Tag{},
		&models.TaskTag{},
		&models.TaskAssignment{},
		&models.TaskComment{},
		&models.Event{},
	}
}

// RunMigrations runs database migrations to ensure tables are up to date
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		zap.L().Error("migration failed", zap.Error(err))
		return err
	}
	return nil
}
