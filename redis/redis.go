package redis

import (
	"context"
	"log"
	"marche/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the global redis client, nil when redis is unreachable
var Client *redis.Client

// Connect initializes the redis client from AppConfig. The rate limiter
// degrades to allow-all when redis is down, so a failed connect is a
// warning, not a fatal.
func Connect() {
	client := redis.NewClient(&redis.Options{
		Addr:         config.AppConfig.RedisAddr,
		Password:     config.AppConfig.RedisPassword,
		DB:           config.AppConfig.RedisDB,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Warning: redis connection test failed: %v", err)
		return
	}

	Client = client
	log.Println("Connected to redis at", config.AppConfig.RedisAddr)
}
