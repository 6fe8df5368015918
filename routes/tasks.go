package routes

import (
	"net/http"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	tasks := group.Group("/tasks")
	{
		tasks.GET("", func(c *gin.Context) { ListTasks(c, db, taskService) })
		tasks.POST("", func(c *gin.Context) { CreateTask(c, db, taskService) })
		tasks.GET("/filter", func(c *gin.Context) { FilterTasks(c, db, taskService) })
		tasks.GET("/list/overdue", func(c *gin.Context) { ListOverdueTasks(c, db, taskService) })
		tasks.GET("/list/upcoming", func(c *gin.Context) { ListUpcomingTasks(c, db, taskService) })
		tasks.GET("/status/:status", func(c *gin.Context) { ListTasksByStatus(c, db, taskService) })
		tasks.GET("/priority/:priority", func(c *gin.Context) { ListTasksByPriority(c, db, taskService) })

		tasks.GET("/:id", func(c *gin.Context) { GetTask(c, db, taskService) })
		tasks.GET("/:id/detail", func(c *gin.Context) { GetTaskDetail(c, db, taskService) })
		tasks.PUT("/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
		tasks.DELETE("/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
		tasks.POST("/:id/complete", func(c *gin.Context) { CompleteTask(c, db, taskService) })
	}

	group.GET("/projects/:id/tasks", func(c *gin.Context) { ListProjectTasks(c, db, taskService) })
	group.GET("/users/:id/tasks", func(c *gin.Context) { ListAssigneeTasks(c, db, taskService) })
}

func ListTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	tasks, err := taskService.List(db, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var input models.TaskCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	task, err := taskService.Create(db, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func GetTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	task, err := taskService.Get(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func GetTaskDetail(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	detail, err := taskService.GetDetail(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var input models.TaskUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	task, err := taskService.Update(db, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	if _, err := taskService.Delete(db, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CompleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	task, err := taskService.MarkCompleted(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// FilterTasks accepts project_id, status, priority and assigned_to; absent
// parameters do not constrain the result.
func FilterTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}

	var filter models.TaskFilter
	if raw := c.Query("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_id must be a UUID"})
			return
		}
		filter.ProjectID = &id
	}
	if raw := c.Query("assigned_to"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "assigned_to must be a UUID"})
			return
		}
		filter.AssignedTo = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task status: " + raw})
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		if !priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task priority: " + raw})
			return
		}
		filter.Priority = &priority
	}

	tasks, err := taskService.FilterTasks(db, filter, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func ListOverdueTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	tasks, err := taskService.GetOverdueTasks(db)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func ListUpcomingTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	days, ok := intQuery(c, "days", services.DefaultUpcomingDays)
	if !ok {
		return
	}
	tasks, err := taskService.GetUpcomingTasks(db, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func ListTasksByStatus(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	tasks, err := taskService.ListByStatus(db, models.TaskStatus(c.Param("status")), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func ListTasksByPriority(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	tasks, err := taskService.ListByPriority(db, models.TaskPriority(c.Param("priority")), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func ListProjectTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	tasks, err := taskService.ListByProject(db, c.Param("id"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func ListAssigneeTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	tasks, err := taskService.ListByAssignee(db, c.Param("id"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}
