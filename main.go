package main

import (
	"context"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gradebook-server-go/config"
	"gradebook-server-go/db"
	"gradebook-server-go/handlers"
)

// Key checked before seeding; mirrors the gradebooks set used by the db package
const gradebooksKeyForCheck = "gradebooks"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis Client
	redisClient, err := db.InitializeRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Create Redis Service
	redisService := db.NewRedisService(redisClient)

	if cfg.SeedData {
		checkAndSeedData(redisClient, redisService)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Create API Handler (injecting the service)
	apiHandler := handlers.NewAPIHandler(redisService)
	router := handlers.SetupRouter(apiHandler)

	log.Printf("Starting server on port %s", cfg.Addr())
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// checkAndSeedData adds a sample gradebook when Redis holds none
func checkAndSeedData(client *redis.Client, service *db.RedisService) {
	ctx := context.Background()
	count, err := client.SCard(ctx, gradebooksKeyForCheck).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("Warning: could not check for existing gradebooks (Key: %s): %v. Skipping seed data.", gradebooksKeyForCheck, err)
		return
	}

	if count == 0 {
		log.Printf("No gradebooks found in Redis (Key: '%s'). Adding sample data...", gradebooksKeyForCheck)
		gb, err := service.SeedData()
		if err != nil {
			log.Printf("Error seeding sample gradebook: %v", err)
			return
		}
		log.Printf("Sample gradebook %s (%s) created", gb.Name, gb.ID)
	} else {
		log.Printf("Found %d gradebooks in Redis (Key: '%s'). Skipping seed data.", count, gradebooksKeyForCheck)
	}
}
