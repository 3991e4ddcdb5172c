package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"moi-backend/entity"

	"github.com/redis/go-redis/v9"
)

// CartStore is the cache the cart aggregate lives in between requests.
// It is a cache, not a source of truth: the relational store never sees
// cart lines.
type CartStore interface {
	Load(ctx context.Context, userID uint) ([]entity.CartLine, error)
	Save(ctx context.Context, userID uint, lines []entity.CartLine) error
	Clear(ctx context.Context, userID uint) error
}

const cartKeyPrefix = "cart:"

type RedisCartStore struct {
	Client *redis.Client
}

func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{Client: client}
}

func cartKey(userID uint) string {
	return cartKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

func (s *RedisCartStore) Load(ctx context.Context, userID uint) ([]entity.CartLine, error) {
	raw, err := s.Client.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []entity.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *RedisCartStore) Save(ctx context.Context, userID uint, lines []entity.CartLine) error {
	if len(lines) == 0 {
		return s.Clear(ctx, userID)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	// no TTL: the cart survives until checkout or explicit clear
	return s.Client.Set(ctx, cartKey(userID), raw, 0).Err()
}

func (s *RedisCartStore) Clear(ctx context.Context, userID uint) error {
	return s.Client.Del(ctx, cartKey(userID)).Err()
}
