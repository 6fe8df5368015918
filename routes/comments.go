package routes

import (
	"net/http"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterCommentRoutes(group *gin.RouterGroup, db *database.Database, commentService services.CommentServiceInterface) {
	comments := group.Group("/comments")
	{
		comments.GET("", func(c *gin.Context) { ListComments(c, db, commentService) })
		comments.POST("", func(c *gin.Context) { CreateComment(c, db, commentService) })
		comments.GET("/:id", func(c *gin.Context) { GetComment(c, db, commentService) })
		comments.GET("/:id/detail", func(c *gin.Context) { GetCommentDetail(c, db, commentService) })
		comments.PUT("/:id", func(c *gin.Context) { UpdateComment(c, db, commentService) })
		comments.DELETE("/:id", func(c *gin.Context) { DeleteComment(c, db, commentService) })
	}

	group.GET("/tasks/:id/comments", func(c *gin.Context) { ListTaskComments(c, db, commentService) })
	group.GET("/users/:id/comments", func(c *gin.Context) { ListUserComments(c, db, commentService) })
}

func ListComments(c *gin.Context, db *database.Database, commentService services.CommentServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	comments, err := commentService.List(db, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment attributes the comment to the authenticated user when the
// body does not name an author.
func CreateComment(c *gin.Context, db *database.Database, commentService services.CommentServiceInterface) {
	var input models.CommentCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if input.CreatedBy == uuid.Nil {
		if id := principal(c); id != nil {
			input.CreatedBy = *id
		}
	}
	comment, err := commentService.Create(db, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func GetComment(c *gin.Context, db *database.Database, commentService services.CommentServiceInterface) {
	comment, err := commentService.Get(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func GetCommentDetail(c *gin.Context, db *database.Database, commentService services.CommentServiceInterface) {
	detail, err := commentService.GetDetail(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func UpdateComment(c *gin.Context, db *database.Database, commentService services.CommentServiceInterface) {
	var input models.CommentUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	comment, err := commentService.Update(db, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func DeleteComment(c *gin.Context, db *database.Database, commentService services.CommentServiceInterface) {
	if _, err := commentService.Delete(db, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func ListTaskComments(c *gin.Context, db *database.Database, commentService services.CommentServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	comments, err := commentService.ListByTask(db, c.Param("id"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func ListUserComments(c *gin.Context, db *database.Database, commentService services.CommentServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	comments, err := commentService.ListByUser(db, c.Param("id"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
