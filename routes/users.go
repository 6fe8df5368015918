package routes

import (
	"net/http"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface) {
	users := group.Group("/users")
	{
		users.GET("", func(c *gin.Context) { ListUsers(c, db, userService) })
		users.POST("", func(c *gin.Context) { CreateUser(c, db, userService) })
		users.GET("/list/active", func(c *gin.Context) { ListActiveUsers(c, db, userService) })
		users.GET("/email/:email", func(c *gin.Context) { GetUserByEmail(c, db, userService) })
		users.GET("/username/:username", func(c *gin.Context) { GetUserByUsername(c, db, userService) })

		users.GET("/:id", func(c *gin.Context) { GetUser(c, db, userService) })
		users.PUT("/:id", func(c *gin.Context) { UpdateUser(c, db, userService) })
		users.DELETE("/:id", func(c *gin.Context) { DeleteUser(c, db, userService) })
		users.POST("/:id/deactivate", func(c *gin.Context) { DeactivateUser(c, db, userService) })
	}
}

func ListUsers(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	users, err := userService.List(db, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func ListActiveUsers(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	users, err := userService.ListActive(db, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func CreateUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	var input models.UserCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	user, err := userService.Create(db, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func GetUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	user, err := userService.Get(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func GetUserByEmail(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	user, err := userService.GetByEmail(db, c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func GetUserByUsername(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	user, err := userService.GetByUsername(db, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	user, err := userService.Update(db, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func DeleteUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	if _, err := userService.Delete(db, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeactivateUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	user, err := userService.Deactivate(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
