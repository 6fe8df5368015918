package routes

import (
	"errors"
	"net/http"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/middleware"
	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func RegisterAuthRoutes(group *gin.RouterGroup, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) {
	auth := group.Group("/auth")
	{
		auth.POST("/login", func(c *gin.Context) { Login(c, db, authService) })
		auth.GET("/me", middleware.AuthMiddleware(authService), func(c *gin.Context) { Me(c, db, userService) })
	}
}

func Login(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err)
		return
	}

	token, user, err := authService.Login(db, request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Me returns the authenticated user
func Me(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	id := principal(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	user, err := userService.Get(db, id.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
