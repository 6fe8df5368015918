package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectAnalytics struct {
	ProjectID            uuid.UUID `json:"project_id"`
	ProjectName          string    `json:"project_name"`
	TotalTasks           int64     `json:"total_tasks"`
	PendingTasks         int64     `json:"pending_tasks"`
	InProgressTasks      int64     `json:"in_progress_tasks"`
	CompletedTasks       int64     `json:"completed_tasks"`
	CancelledTasks       int64     `json:"cancelled_tasks"`
	OnHoldTasks          int64     `json:"on_hold_tasks"`
	OverdueTasks         int64     `json:"overdue_tasks"`
	CompletionPercentage float64   `json:"completion_percentage"`
}

// UserWorkload keeps the primary-assignee counts (from Task.AssignedTo) apart
// from the explicit assignment totals (from TaskAssignment rows).
type UserWorkload struct {
	UserID              uuid.UUID `json:"user_id"`
	Username            string    `json:"username"`
	TotalAssignedTasks  int64     `json:"total_assigned_tasks"`
	PendingTasks        int64     `json:"pending_tasks"`
	InProgressTasks     int64     `json:"in_progress_tasks"`
	CompletedTasks      int64     `json:"completed_tasks"`
	CancelledTasks      int64     `json:"cancelled_tasks"`
	OnHoldTasks         int64     `json:"on_hold_tasks"`
	OverdueTasks        int64     `json:"overdue_tasks"`
	AssignmentCount     int64     `json:"assignment_count"`
	TotalHoursAllocated float64   `json:"total_hours_allocated"`
}

type TaskDashboard struct {
	TotalTasks        int64               `json:"total_tasks"`
	TasksByStatus     map[string]int64    `json:"tasks_by_status"`
	TasksByPriority   map[string]int64    `json:"tasks_by_priority"`
	TasksByProject    map[string]int64    `json:"tasks_by_project"`
	OverdueTasks      int64               `json:"overdue_tasks"`
	UpcomingDeadlines []TaskWithRelations `json:"upcoming_deadlines"`
	GeneratedAt       time.Time           `json:"generated_at"`
}

// TrendPoint is the number of tasks completed on one UTC calendar date
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type CompletionTrend struct {
	Days   int          `json:"days"`
	Since  time.Time    `json:"since"`
	Points []TrendPoint `json:"points"`
}
