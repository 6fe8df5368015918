package services

import (
	"time"

	"taskboard-app/taskboard/models"

	"gorm.io/gorm"
)

const (
	MaxPageSize          = 100
	DefaultUpcomingDays  = 7
	DefaultTrendDays     = 30
	DashboardUpcomingMax = 10
)

// ClampPage bounds pagination: negative skip becomes 0, a limit outside
// 1..MaxPageSize becomes MaxPageSize.
func ClampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	return skip, limit
}

func paginate(skip, limit int) func(*gorm.DB) *gorm.DB {
	skip, limit = ClampPage(skip, limit)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(skip).Limit(limit)
	}
}

var closedStatuses = []string{
	string(models.TaskStatusCompleted),
	string(models.TaskStatusCancelled),
}

// overdueScope: due before now and neither completed nor cancelled
func overdueScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.due_date IS NOT NULL AND tasks.due_date < ?", now).
			Where("tasks.status NOT IN ?", closedStatuses)
	}
}

// upcomingScope: due within [now, now+days] and not completed
func upcomingScope(now time.Time, days int) func(*gorm.DB) *gorm.DB {
	until := now.AddDate(0, 0, days)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.due_date IS NOT NULL AND tasks.due_date >= ? AND tasks.due_date <= ?", now, until).
			Where("tasks.status <> ?", string(models.TaskStatusCompleted))
	}
}

// filterScope ANDs together the predicates set on filter
func filterScope(filter models.TaskFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.ProjectID != nil {
			db = db.Where("tasks.project_id = ?", *filter.ProjectID)
		}
		if filter.Status != nil {
			db = db.Where("tasks.status = ?", string(*filter.Status))
		}
		if filter.Priority != nil {
			db = db.Where("tasks.priority = ?", string(*filter.Priority))
		}
		if filter.AssignedTo != nil {
			db = db.Where("tasks.assigned_to = ?", *filter.AssignedTo)
		}
		return db
	}
}
