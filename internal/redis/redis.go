package redis

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/cliniccare/clinic-scheduler/internal/config"
)

func NewClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The cache is an optimization: a dead redis degrades reads to the
	// database instead of stopping the server.
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, serving without cache: %v", cfg.RedisAddr, err)
	}

	return client
}
