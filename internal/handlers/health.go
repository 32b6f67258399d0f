package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LksLvnt/studymate/internal/database"
)

// Health reports liveness and whether the database answers.
func Health(c *gin.Context) {
	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
