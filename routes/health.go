package routes

import (
	"context"
	"net/http"
	"time"

	"taskboard-app/taskboard/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterHealthRoutes(group *gin.RouterGroup, db *database.Database) {
	group.GET("/health", func(c *gin.Context) { Health(c, db) })
}

func Health(c *gin.Context, db *database.Database) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		zap.L().Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up", "time": time.Now().UTC()})
}
