package api

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/blockpong/internal/api/handlers"
	"github.com/playmatatu/blockpong/internal/config"
	"github.com/playmatatu/blockpong/internal/game"
	"github.com/playmatatu/blockpong/internal/middleware"
	"github.com/playmatatu/blockpong/internal/redis"
	"github.com/playmatatu/blockpong/internal/ws"
)

// SetupRoutes configures all routes
func SetupRoutes(router *gin.Engine, room *game.Room, hub *ws.Hub, mirror *redis.SnapshotMirror, cfg *config.Config) {
	if !cfg.IsProduction() {
		router.Use(func(c *gin.Context) {
			// Always serve the latest client build in development
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	// Session channel
	router.GET("/socket", middleware.WebSocketCORSCheck(cfg), handlers.HandleGameWebSocket(hub))

	// API v1 group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.CORSMiddleware(cfg))
	{
		v1.GET("/health", handlers.HealthCheck(room, hub))
		v1.GET("/state", handlers.GetGameState(room))
		v1.GET("/state/mirror", handlers.GetMirroredState(mirror))
	}

	// Presentation client
	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			router.StaticFile("/", cfg.StaticDir+"/index.html")
			router.Static("/static", cfg.StaticDir)
			log.Printf("[SERVER] Serving client from %s", cfg.StaticDir)
		} else {
			log.Printf("[SERVER] Static dir %s not found; client not served", cfg.StaticDir)
		}
	}
}
