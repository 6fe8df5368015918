package routes

import (
	"net/http"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
)

func RegisterTagRoutes(group *gin.RouterGroup, db *database.Database, tagService services.TagServiceInterface) {
	tags := group.Group("/tags")
	{
		tags.GET("", func(c *gin.Context) { ListTags(c, db, tagService) })
		tags.POST("", func(c *gin.Context) { CreateTag(c, db, tagService) })
		tags.GET("/name/:name", func(c *gin.Context) { GetTagByName(c, db, tagService) })

		tags.GET("/:id", func(c *gin.Context) { GetTag(c, db, tagService) })
		tags.GET("/:id/tasks", func(c *gin.Context) { GetTagWithTasks(c, db, tagService) })
		tags.PUT("/:id", func(c *gin.Context) { UpdateTag(c, db, tagService) })
		tags.DELETE("/:id", func(c *gin.Context) { DeleteTag(c, db, tagService) })
		tags.POST("/:id/attach/:task_id", func(c *gin.Context) { AttachTag(c, db, tagService) })
		tags.DELETE("/:id/detach/:task_id", func(c *gin.Context) { DetachTag(c, db, tagService) })
	}

	group.GET("/tasks/:id/tags", func(c *gin.Context) { ListTaskTags(c, db, tagService) })
}

func ListTags(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	tags, err := tagService.List(db, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func CreateTag(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	var input models.TagCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	tag, err := tagService.Create(db, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func GetTag(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	tag, err := tagService.Get(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func GetTagByName(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	tag, err := tagService.GetByName(db, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func GetTagWithTasks(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	tag, err := tagService.GetWithTasks(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func UpdateTag(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	var input models.TagUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	tag, err := tagService.Update(db, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func DeleteTag(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	if _, err := tagService.Delete(db, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func AttachTag(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	if err := tagService.AttachTag(db, c.Param("id"), c.Param("task_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag attached"})
}

func DetachTag(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	if err := tagService.DetachTag(db, c.Param("id"), c.Param("task_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag detached"})
}

func ListTaskTags(c *gin.Context, db *database.Database, tagService services.TagServiceInterface) {
	tags, err := tagService.ListTaskTags(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}
