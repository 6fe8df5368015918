package routes

import (
	"net/http"
	"time"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
)

func RegisterAnalyticsRoutes(group *gin.RouterGroup, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	analytics := group.Group("/analytics")
	{
		analytics.GET("/dashboard", func(c *gin.Context) { GetDashboard(c, db, analyticsService) })
		analytics.GET("/projects/:id", func(c *gin.Context) { GetProjectAnalytics(c, db, analyticsService) })
		analytics.GET("/users/:id/workload", func(c *gin.Context) { GetUserWorkload(c, db, analyticsService) })
		analytics.GET("/completion-trend", func(c *gin.Context) { GetCompletionTrend(c, db, analyticsService) })
		analytics.GET("/overdue", func(c *gin.Context) { GetOverdueTasks(c, db, analyticsService) })
		analytics.GET("/tasks-created", func(c *gin.Context) { GetTasksCreatedBetween(c, db, analyticsService) })
	}
}

func GetDashboard(c *gin.Context, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	dashboard, err := analyticsService.Dashboard(db)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func GetProjectAnalytics(c *gin.Context, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	result, err := analyticsService.ProjectAnalytics(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetUserWorkload(c *gin.Context, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	result, err := analyticsService.UserWorkload(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetCompletionTrend(c *gin.Context, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	days, ok := intQuery(c, "days", services.DefaultTrendDays)
	if !ok {
		return
	}
	trend, err := analyticsService.CompletionTrend(db, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func GetOverdueTasks(c *gin.Context, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	tasks, err := analyticsService.OverdueTasks(db)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTasksCreatedBetween takes RFC 3339 start and end query parameters
func GetTasksCreatedBetween(c *gin.Context, db *database.Database, analyticsService services.AnalyticsServiceInterface) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be an RFC 3339 timestamp"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be an RFC 3339 timestamp"})
		return
	}

	tasks, err := analyticsService.TasksCreatedBetween(db, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}
