package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/blockpong/internal/config"
)

// CORSMiddleware returns a CORS middleware configured for the environment
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	log.Printf("[CORS] Environment: %s, FrontendURL: %s", cfg.Environment, cfg.FrontendURL)

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Accept", "Cache-Control",
		},
		ExposeHeaders: []string{"Content-Length", "X-Player-Count"},
		MaxAge:        12 * time.Hour, // Cache preflight responses
	}

	if cfg.IsProduction() {
		corsConfig.AllowOrigins = allowedOrigins(cfg)
		if len(corsConfig.AllowOrigins) == 0 {
			// gin-contrib/cors refuses a config with no way to allow anything
			corsConfig.AllowOriginFunc = func(string) bool { return false }
		}
		log.Printf("[CORS] Production allowed origins: %v", corsConfig.AllowOrigins)
	} else {
		// Any localhost port in development
		corsConfig.AllowOriginFunc = isLocalOrigin
	}

	return cors.New(corsConfig)
}

// WebSocketCORSCheck validates WebSocket upgrade origins
func WebSocketCORSCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only check for WebSocket upgrade requests
		if !strings.Contains(strings.ToLower(c.GetHeader("Connection")), "upgrade") ||
			strings.ToLower(c.GetHeader("Upgrade")) != "websocket" {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			// Non-browser clients do not send an Origin
			c.Next()
			return
		}

		var allowed bool
		if cfg.IsProduction() {
			for _, o := range allowedOrigins(cfg) {
				if origin == o {
					allowed = true
					break
				}
			}
		} else {
			allowed = isLocalOrigin(origin)
		}

		if !allowed {
			log.Printf("[CORS] WebSocket origin rejected: %s", origin)
			c.JSON(403, gin.H{"error": "WebSocket origin not allowed"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if cfg.FrontendURL == "" {
		return []string{}
	}
	return []string{cfg.FrontendURL}
}

func isLocalOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost:") ||
		strings.HasPrefix(origin, "http://127.0.0.1:")
}
