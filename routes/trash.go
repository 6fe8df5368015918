package routes

import (
	"net/http"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
)

// RegisterTrashRoutes exposes the caller's soft-deleted projects
func RegisterTrashRoutes(group *gin.RouterGroup, db *database.Database, trashService services.TrashServiceInterface) {
	group.GET("/trash", func(c *gin.Context) { GetTrashedProjects(c, db, trashService) })
	group.POST("/trash/projects/:id/restore", func(c *gin.Context) { RestoreTrashedProject(c, db, trashService) })
	group.DELETE("/trash/projects/:id", func(c *gin.Context) { PermanentlyDeleteProject(c, db, trashService) })
	group.DELETE("/trash", func(c *gin.Context) { EmptyTrash(c, db, trashService) })
}

// trashOwner is the authenticated user; the trash has no meaning without one
func trashOwner(c *gin.Context) (string, bool) {
	id := principal(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	return id.String(), true
}

func GetTrashedProjects(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	owner, ok := trashOwner(c)
	if !ok {
		return
	}
	projects, err := trashService.GetTrashedProjects(db, owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func RestoreTrashedProject(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	owner, ok := trashOwner(c)
	if !ok {
		return
	}
	project, err := trashService.RestoreProject(db, c.Param("id"), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func PermanentlyDeleteProject(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	owner, ok := trashOwner(c)
	if !ok {
		return
	}
	if _, err := trashService.PermanentlyDeleteProject(db, c.Param("id"), owner); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func EmptyTrash(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	owner, ok := trashOwner(c)
	if !ok {
		return
	}
	removed, err := trashService.EmptyTrash(db, owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trash emptied", "removed": removed})
}
