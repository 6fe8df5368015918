package routes

import (
	"net/http"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
)

func RegisterAssignmentRoutes(group *gin.RouterGroup, db *database.Database, assignmentService services.AssignmentServiceInterface) {
	assignments := group.Group("/assignments")
	{
		assignments.GET("", func(c *gin.Context) { ListAssignments(c, db, assignmentService) })
		assignments.POST("", func(c *gin.Context) { CreateAssignment(c, db, assignmentService) })
		assignments.DELETE("/task/:task_id/user/:user_id", func(c *gin.Context) { RemoveAssignment(c, db, assignmentService) })

		assignments.GET("/:id", func(c *gin.Context) { GetAssignment(c, db, assignmentService) })
		assignments.PUT("/:id", func(c *gin.Context) { UpdateAssignment(c, db, assignmentService) })
		assignments.DELETE("/:id", func(c *gin.Context) { DeleteAssignment(c, db, assignmentService) })
	}

	group.GET("/tasks/:id/assignments", func(c *gin.Context) { ListTaskAssignments(c, db, assignmentService) })
	group.GET("/users/:id/assignments", func(c *gin.Context) { ListUserAssignments(c, db, assignmentService) })
}

func ListAssignments(c *gin.Context, db *database.Database, assignmentService services.AssignmentServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	assignments, err := assignmentService.List(db, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// CreateAssignment records the authenticated user as assigner unless the
// body names one.
func CreateAssignment(c *gin.Context, db *database.Database, assignmentService services.AssignmentServiceInterface) {
	var input models.AssignmentCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if input.AssignedBy == nil {
		input.AssignedBy = principal(c)
	}
	if err := models.Validate(input); err != nil {
		badRequest(c, err)
		return
	}

	assignment, err := assignmentService.CreateAssignment(db, input.TaskID, input.UserID, input.AssignedBy, input.HoursAllocated)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func GetAssignment(c *gin.Context, db *database.Database, assignmentService services.AssignmentServiceInterface) {
	assignment, err := assignmentService.Get(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func UpdateAssignment(c *gin.Context, db *database.Database, assignmentService services.AssignmentServiceInterface) {
	var input models.AssignmentUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	assignment, err := assignmentService.Update(db, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func DeleteAssignment(c *gin.Context, db *database.Database, assignmentService services.AssignmentServiceInterface) {
	if _, err := assignmentService.Delete(db, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func RemoveAssignment(c *gin.Context, db *database.Database, assignmentService services.AssignmentServiceInterface) {
	if _, err := assignmentService.RemoveAssignment(db, c.Param("task_id"), c.Param("user_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func ListTaskAssignments(c *gin.Context, db *database.Database, assignmentService services.AssignmentServiceInterface) {
	assignments, err := assignmentService.ListTaskAssignments(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func ListUserAssignments(c *gin.Context, db *database.Database, assignmentService services.AssignmentServiceInterface) {
	assignments, err := assignmentService.ListUserAssignments(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}
