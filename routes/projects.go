package routes

import (
	"net/http"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterProjectRoutes(group *gin.RouterGroup, db *database.Database, projectService services.ProjectServiceInterface) {
	projects := group.Group("/projects")
	{
		projects.GET("", func(c *gin.Context) { ListProjects(c, db, projectService) })
		projects.POST("", func(c *gin.Context) { CreateProject(c, db, projectService) })
		projects.GET("/list/active", func(c *gin.Context) { ListActiveProjects(c, db, projectService) })

		projects.GET("/:id", func(c *gin.Context) { GetProject(c, db, projectService) })
		projects.GET("/:id/detail", func(c *gin.Context) { GetProjectDetail(c, db, projectService) })
		projects.PUT("/:id", func(c *gin.Context) { UpdateProject(c, db, projectService) })
		projects.DELETE("/:id", func(c *gin.Context) { DeleteProject(c, db, projectService) })
		projects.POST("/:id/deactivate", func(c *gin.Context) { DeactivateProject(c, db, projectService) })
		projects.POST("/:id/restore", func(c *gin.Context) { RestoreProject(c, db, projectService) })
	}

	group.GET("/users/:id/projects", func(c *gin.Context) { ListProjectsByOwner(c, db, projectService) })
}

func ListProjects(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	projects, err := projectService.List(db, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func ListActiveProjects(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	projects, err := projectService.ListActive(db, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func ListProjectsByOwner(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	projects, err := projectService.ListByOwner(db, c.Param("id"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject defaults the owner to the authenticated user
func CreateProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	var input models.ProjectCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if input.OwnerID == uuid.Nil {
		if id := principal(c); id != nil {
			input.OwnerID = *id
		}
	}
	project, err := projectService.Create(db, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func GetProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	project, err := projectService.Get(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func GetProjectDetail(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	detail, err := projectService.GetDetail(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func UpdateProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	var input models.ProjectUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	project, err := projectService.Update(db, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func DeleteProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	if _, err := projectService.Delete(db, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeactivateProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	project, err := projectService.SoftDelete(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func RestoreProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	project, err := projectService.Restore(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
