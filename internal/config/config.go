package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Server
	Port        string
	FrontendURL string
	StaticDir   string

	// Redis (optional; empty disables event relay and snapshot mirror)
	RedisURL string

	// Simulation
	TickRate                 int
	SnapshotMirrorEvery      int
	SnapshotMirrorTTLSeconds int

	// WebSocket
	WSSendBuffer int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Server
		Port:        getEnv("PORT", "3000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		StaticDir:   getEnv("STATIC_DIR", "public"),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Simulation
		TickRate:                 getEnvInt("TICK_RATE", 60),
		SnapshotMirrorEvery:      getEnvInt("SNAPSHOT_MIRROR_EVERY", 60),
		SnapshotMirrorTTLSeconds: getEnvInt("SNAPSHOT_MIRROR_TTL_SECONDS", 5),

		// WebSocket
		WSSendBuffer: getEnvInt("WS_SEND_BUFFER", 256),
	}
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
