package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/blockpong/internal/game"
	"github.com/playmatatu/blockpong/internal/redis"
)

// GetGameState returns the live snapshot in the same shape clients receive
// over the socket, plus the connected player count.
func GetGameState(room *game.Room) gin.HandlerFunc {
	return func(c *gin.Context) {
		players := room.Players()
		state := room.Snapshot()

		c.Header("X-Player-Count", strconv.Itoa(players))
		c.JSON(http.StatusOK, gin.H{
			"connectedPlayers": players,
			"activeBlocks":     state.ActiveBlocks(),
			"gameState":        state,
		})
	}
}

// GetMirroredState returns the snapshot last mirrored to Redis, which is what
// out-of-process readers of arena:state see.
func GetMirroredState(mirror *redis.SnapshotMirror) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := mirror.Load(c.Request.Context())
		switch {
		case errors.Is(err, redis.ErrMirrorDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot mirror not configured"})
		case errors.Is(err, redis.ErrNoSnapshot):
			c.JSON(http.StatusNotFound, gin.H{"error": "no mirrored snapshot"})
		case err != nil:
			log.Printf("[API] load mirrored snapshot: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load snapshot"})
		default:
			c.JSON(http.StatusOK, gin.H{
				"activeBlocks": state.ActiveBlocks(),
				"gameState":    state,
			})
		}
	}
}
