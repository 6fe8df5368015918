package routes

import (
	"taskboard-app/taskboard/middleware"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes serves the live activity feed on /ws. Clients pass
// their token in the query string or an Authorization header.
func RegisterWebSocketRoutes(group *gin.RouterGroup, authService services.AuthServiceInterface, wsService services.WebSocketServiceInterface) {
	group.GET("/ws", middleware.WebSocketAuthMiddleware(authService), func(c *gin.Context) {
		wsService.HandleConnection(c)
	})
}
