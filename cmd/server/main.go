package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/playmatatu/blockpong/internal/api"
	"github.com/playmatatu/blockpong/internal/config"
	"github.com/playmatatu/blockpong/internal/game"
	"github.com/playmatatu/blockpong/internal/redis"
	"github.com/playmatatu/blockpong/internal/ws"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it there is no event relay or snapshot mirror
	publisher := redis.NewEventPublisher(nil)
	mirror := redis.NewSnapshotMirror(nil, 0)
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = redis.Connect(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()

		publisher = redis.NewEventPublisher(rdb)
		publisher.Start(ctx)
		mirror = redis.NewSnapshotMirror(rdb, time.Duration(cfg.SnapshotMirrorTTLSeconds)*time.Second)
		log.Printf("[REDIS] Connected; events on %q, snapshot mirror at %q", redis.EventsChannel, redis.SnapshotKey)
	} else {
		log.Println("[REDIS] REDIS_URL not set; event relay and snapshot mirror disabled")
	}

	// Single room: the simulation context shared by the hub and the scheduler
	room := game.NewRoom(publisher)
	hub := ws.NewHub(room, cfg.WSSendBuffer)
	go hub.Run(ctx)
	ws.StartEventSubscriber(ctx, rdb, redis.EventsChannel, hub)

	scheduler := game.NewScheduler(room, hub, cfg.TickRate).WithMirror(mirror, cfg.SnapshotMirrorEvery)
	go scheduler.Run(ctx)

	// Set up Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, room, hub, mirror, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[SERVER] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[SERVER] Shutdown error: %v", err)
	}
}
