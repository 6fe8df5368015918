package routes

import (
	"net/http"
	"time"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/gin-gonic/gin"
)

// RegisterDebugRoutes exposes the outbox backlog. Only mounted outside
// production.
func RegisterDebugRoutes(group *gin.RouterGroup, db *database.Database) {
	debugGroup := group.Group("/debug")
	{
		debugGroup.GET("/event-queue", func(c *gin.Context) { GetEventQueue(c, db) })
	}
}

func GetEventQueue(c *gin.Context, db *database.Database) {
	var events []models.Event
	if err := db.DB.Where("dispatched = ?", false).Order("id").Limit(100).Find(&events).Error; err != nil {
		respondError(c, err)
		return
	}

	var pending int64
	if err := db.DB.Model(&models.Event{}).Where("dispatched = ?", false).Count(&pending).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pending_events": pending,
		"events":         events,
		"time":           time.Now().UTC(),
	})
}
