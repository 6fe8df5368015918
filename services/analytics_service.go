package services

import (
	"sort"
	"time"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalyticsServiceInterface interface {
	ProjectAnalytics(db *database.Database, projectID string) (models.ProjectAnalytics, error)
	UserWorkload(db *database.Database, userID string) (models.UserWorkload, error)
	Dashboard(db *database.Database) (models.TaskDashboard, error)
	CompletionTrend(db *database.Database, days int) (models.CompletionTrend, error)
	OverdueTasks(db *database.Database) ([]models.TaskWithRelations, error)
	TasksCreatedBetween(db *database.Database, start, end time.Time) ([]models.Task, error)
}

// AnalyticsService computes read-only aggregates straight from the store
type AnalyticsService struct {
	clock func() time.Time
}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

func (s *AnalyticsService) now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

type labelCount struct {
	Label string
	Count int64
}

// countBy groups the tasks selected by query on column
func countBy(query *gorm.DB, column string) (map[string]int64, error) {
	var rows []labelCount
	if err := query.Select(column + " AS label, COUNT(*) AS count").Group(column).Scan(&rows).Error; err != nil {
		return nil, persistenceError(err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Count
	}
	return counts, nil
}

func (s *AnalyticsService) ProjectAnalytics(db *database.Database, projectID string) (models.ProjectAnalytics, error) {
	id, err := parseID(projectID, ErrProjectNotFound)
	if err != nil {
		return models.ProjectAnalytics{}, err
	}
	now := s.now()

	var project models.Project
	if err := db.DB.First(&project, "id = ?", id).Error; err != nil {
		return models.ProjectAnalytics{}, lookupError(err, ErrProjectNotFound)
	}

	byStatus, err := countBy(db.DB.Model(&models.Task{}).Where("tasks.project_id = ?", id), "tasks.status")
	if err != nil {
		return models.ProjectAnalytics{}, err
	}

	result := models.ProjectAnalytics{
		ProjectID:       project.ID,
		ProjectName:     project.Name,
		PendingTasks:    byStatus[string(models.TaskStatusPending)],
		InProgressTasks: byStatus[string(models.TaskStatusInProgress)],
		CompletedTasks:  byStatus[string(models.TaskStatusCompleted)],
		CancelledTasks:  byStatus[string(models.TaskStatusCancelled)],
		OnHoldTasks:     byStatus[string(models.TaskStatusOnHold)],
	}
	for _, count := range byStatus {
		result.TotalTasks += count
	}

	if err := db.DB.Model(&models.Task{}).
		Where("tasks.project_id = ?", id).
		Scopes(overdueScope(now)).
		Count(&result.OverdueTasks).Error; err != nil {
		return models.ProjectAnalytics{}, persistenceError(err)
	}

	result.CompletionPercentage = percentage(result.CompletedTasks, result.TotalTasks)
	return result, nil
}

// percentage is part/total*100, 0 for an empty total
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// UserWorkload counts tasks where the user is the primary assignee and,
// separately, the user's explicit assignment rows.
func (s *AnalyticsService) UserWorkload(db *database.Database, userID string) (models.UserWorkload, error) {
	id, err := parseID(userID, ErrUserNotFound)
	if err != nil {
		return models.UserWorkload{}, err
	}
	now := s.now()

	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		return models.UserWorkload{}, lookupError(err, ErrUserNotFound)
	}

	byStatus, err := countBy(db.DB.Model(&models.Task{}).Where("tasks.assigned_to = ?", id), "tasks.status")
	if err != nil {
		return models.UserWorkload{}, err
	}

	result := models.UserWorkload{
		UserID:          user.ID,
		Username:        user.Username,
		PendingTasks:    byStatus[string(models.TaskStatusPending)],
		InProgressTasks: byStatus[string(models.TaskStatusInProgress)],
		CompletedTasks:  byStatus[string(models.TaskStatusCompleted)],
		CancelledTasks:  byStatus[string(models.TaskStatusCancelled)],
		OnHoldTasks:     byStatus[string(models.TaskStatusOnHold)],
	}
	for _, count := range byStatus {
		result.TotalAssignedTasks += count
	}

	if err := db.DB.Model(&models.Task{}).
		Where("tasks.assigned_to = ?", id).
		Scopes(overdueScope(now)).
		Count(&result.OverdueTasks).Error; err != nil {
		return models.UserWorkload{}, persistenceError(err)
	}

	var totals struct {
		Count int64
		Hours float64
	}
	if err := db.DB.Model(&models.TaskAssignment{}).
		Select("COUNT(*) AS count, COALESCE(SUM(hours_allocated), 0) AS hours").
		Where("user_id = ?", id).
		Scan(&totals).Error; err != nil {
		return models.UserWorkload{}, persistenceError(err)
	}
	result.AssignmentCount = totals.Count
	result.TotalHoursAllocated = totals.Hours

	return result, nil
}

// Dashboard summarizes every task in the store. Status and priority maps carry
// every label, zero when no task has it.
func (s *AnalyticsService) Dashboard(db *database.Database) (models.TaskDashboard, error) {
	now := s.now()
	dashboard := models.TaskDashboard{
		TasksByStatus:     make(map[string]int64, len(models.TaskStatuses)),
		TasksByPriority:   make(map[string]int64, len(models.TaskPriorities)),
		TasksByProject:    map[string]int64{},
		UpcomingDeadlines: []models.TaskWithRelations{},
		GeneratedAt:       now,
	}

	if err := db.DB.Model(&models.Task{}).Count(&dashboard.TotalTasks).Error; err != nil {
		return models.TaskDashboard{}, persistenceError(err)
	}

	byStatus, err := countBy(db.DB.Model(&models.Task{}), "tasks.status")
	if err != nil {
		return models.TaskDashboard{}, err
	}
	for _, status := range models.TaskStatuses {
		dashboard.TasksByStatus[string(status)] = byStatus[string(status)]
	}

	byPriority, err := countBy(db.DB.Model(&models.Task{}), "tasks.priority")
	if err != nil {
		return models.TaskDashboard{}, err
	}
	for _, priority := range models.TaskPriorities {
		dashboard.TasksByPriority[string(priority)] = byPriority[string(priority)]
	}

	byProject, err := countBy(db.DB.Model(&models.Task{}).Joins("JOIN projects ON projects.id = tasks.project_id"), "projects.name")
	if err != nil {
		return models.TaskDashboard{}, err
	}
	for name, count := range byProject {
		dashboard.TasksByProject[name] = count
	}

	if err := db.DB.Model(&models.Task{}).Scopes(overdueScope(now)).Count(&dashboard.OverdueTasks).Error; err != nil {
		return models.TaskDashboard{}, persistenceError(err)
	}

	var upcoming []models.Task
	if err := db.DB.Model(&models.Task{}).
		Scopes(upcomingScope(now, DefaultUpcomingDays)).
		Order("tasks.due_date ASC").
		Order("tasks.id").
		Limit(DashboardUpcomingMax).
		Find(&upcoming).Error; err != nil {
		return models.TaskDashboard{}, persistenceError(err)
	}
	dashboard.UpcomingDeadlines, err = withRelations(db.DB, upcoming)
	if err != nil {
		return models.TaskDashboard{}, err
	}

	return dashboard, nil
}

// CompletionTrend counts completed tasks per UTC date over the last days days
// (30 when days <= 0). Dates without completions are omitted.
func (s *AnalyticsService) CompletionTrend(db *database.Database, days int) (models.CompletionTrend, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	since := s.now().AddDate(0, 0, -days)

	var stamps []time.Time
	if err := db.DB.Model(&models.Task{}).
		Where("status = ? AND completed_at IS NOT NULL AND completed_at >= ?", string(models.TaskStatusCompleted), since).
		Pluck("completed_at", &stamps).Error; err != nil {
		return models.CompletionTrend{}, persistenceError(err)
	}

	perDay := map[string]int64{}
	for _, stamp := range stamps {
		perDay[stamp.UTC().Format(time.DateOnly)]++
	}

	trend := models.CompletionTrend{Days: days, Since: since, Points: make([]models.TrendPoint, 0, len(perDay))}
	for date, count := range perDay {
		trend.Points = append(trend.Points, models.TrendPoint{Date: date, Count: count})
	}
	sort.Slice(trend.Points, func(i, j int) bool { return trend.Points[i].Date < trend.Points[j].Date })

	return trend, nil
}

func (s *AnalyticsService) OverdueTasks(db *database.Database) ([]models.TaskWithRelations, error) {
	now := s.now()
	var tasks []models.Task
	if err := db.DB.Model(&models.Task{}).
		Scopes(overdueScope(now)).
		Order("tasks.due_date ASC").
		Order("tasks.id").
		Find(&tasks).Error; err != nil {
		return nil, persistenceError(err)
	}
	return withRelations(db.DB, tasks)
}

// TasksCreatedBetween lists tasks created in [start, end], newest first
func (s *AnalyticsService) TasksCreatedBetween(db *database.Database, start, end time.Time) ([]models.Task, error) {
	if end.Before(start) {
		return nil, newError(ErrValidation, "end must not be before start")
	}
	tasks := []models.Task{}
	if err := db.DB.Where("created_at >= ? AND created_at <= ?", start.UTC(), end.UTC()).
		Order("created_at DESC").
		Order("id DESC").
		Find(&tasks).Error; err != nil {
		return nil, persistenceError(err)
	}
	return tasks, nil
}

// withRelations resolves project and assignee for each task in two queries
func withRelations(tx *gorm.DB, tasks []models.Task) ([]models.TaskWithRelations, error) {
	projectIDs := make([]uuid.UUID, 0, len(tasks))
	userIDs := make([]uuid.UUID, 0, len(tasks))
	for _, task := range tasks {
		projectIDs = append(projectIDs, task.ProjectID)
		if task.AssignedTo != nil {
			userIDs = append(userIDs, *task.AssignedTo)
		}
	}

	projects, err := projectsByID(tx, projectIDs)
	if err != nil {
		return nil, err
	}
	users, err := usersByID(tx, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]models.TaskWithRelations, 0, len(tasks))
	for _, task := range tasks {
		item := models.TaskWithRelations{Task: task}
		if project, ok := projects[task.ProjectID]; ok {
			item.Project = &project
		}
		if task.AssignedTo != nil {
			if user, ok := users[*task.AssignedTo]; ok {
				item.Assignee = &user
			}
		}
		result = append(result, item)
	}
	return result, nil
}

var AnalyticsServiceInstance AnalyticsServiceInterface
