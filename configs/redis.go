package configs

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

func Redis() *redis.Client {
	return rdb
}

func ConnectionRedis(cfg *Config) {
	rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis ping failed (%v), carts will not survive restarts until it is back", err)
	}
}
