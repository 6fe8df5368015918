package routes

import (
	"net/http"
	"testing"
	"time"

	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/services"
	"taskboard-app/taskboard/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func analyticsRouter(svc *testutils.MockAnalyticsService) *gin.Engine {
	return newTestRouter(func(group *gin.RouterGroup) {
		RegisterAnalyticsRoutes(group, testDB, svc)
	})
}

func TestGetDashboard(t *testing.T) {
	svc := new(testutils.MockAnalyticsService)
	svc.On("Dashboard", testDB).Return(models.TaskDashboard{
		TotalTasks:    2,
		TasksByStatus: map[string]int64{"pending": 2},
	}, nil)

	w := perform(analyticsRouter(svc), http.MethodGet, "/analytics/dashboard", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var dashboard models.TaskDashboard
	decode(t, w, &dashboard)
	assert.Equal(t, int64(2), dashboard.TotalTasks)
}

func TestGetCompletionTrend_DefaultDays(t *testing.T) {
	svc := new(testutils.MockAnalyticsService)
	svc.On("CompletionTrend", testDB, services.DefaultTrendDays).Return(models.CompletionTrend{Days: 30}, nil)

	w := perform(analyticsRouter(svc), http.MethodGet, "/analytics/completion-trend", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGetTasksCreatedBetween(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	svc := new(testutils.MockAnalyticsService)
	svc.On("TasksCreatedBetween", testDB, start, end).Return([]models.Task{}, nil)

	router := analyticsRouter(svc)

	w := perform(router, http.MethodGet, "/analytics/tasks-created?start=2024-03-01T00:00:00Z&end=2024-03-31T00:00:00Z", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodGet, "/analytics/tasks-created?start=yesterday&end=2024-03-31T00:00:00Z", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodGet, "/analytics/tasks-created?start=2024-03-01T00:00:00Z", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestGetProjectAnalytics_NotFound(t *testing.T) {
	svc := new(testutils.MockAnalyticsService)
	svc.On("ProjectAnalytics", testDB, "p1").Return(models.ProjectAnalytics{}, services.ErrProjectNotFound)

	w := perform(analyticsRouter(svc), http.MethodGet, "/analytics/projects/p1", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
