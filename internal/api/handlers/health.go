package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/blockpong/internal/game"
	"github.com/playmatatu/blockpong/internal/ws"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck returns server health status
func HealthCheck(room *game.Room, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"service":           "blockpong",
			"version":           version,
			"uptime":            time.Since(startTime).String(),
			"connected_players": room.Players(),
			"sessions":          hub.ClientCount(),
		})
	}
}
