package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ServerPort    int
	SeedData      bool
	GinMode       string
}

// Load reads the configuration from the environment. A .env file is loaded
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	dbStr := os.Getenv("REDIS_DB")
	if dbStr == "" {
		dbStr = "8"
	}
	redisDB, err := strconv.Atoi(dbStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB environment variable: %w", err)
	}
	if redisDB < 0 {
		return nil, fmt.Errorf("REDIS_DB must not be negative, got %d", redisDB)
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	seed := true
	if s := os.Getenv("SEED_DATA"); s != "" {
		seed, err = strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_DATA environment variable: %w", err)
		}
	}

	ginMode := os.Getenv("GIN_MODE")
	switch ginMode {
	case "", "debug", "release", "test":
	default:
		return nil, fmt.Errorf("GIN_MODE must be debug, release or test, got %q", ginMode)
	}

	return &Config{
		RedisAddr:     addr,
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		ServerPort:    port,
		SeedData:      seed,
		GinMode:       ginMode,
	}, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
