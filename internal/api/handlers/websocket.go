package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/blockpong/internal/ws"
)

// HandleGameWebSocket handles real-time game communication
func HandleGameWebSocket(hub *ws.Hub) gin.HandlerFunc {
	return ws.HandleWebSocket(hub)
}
