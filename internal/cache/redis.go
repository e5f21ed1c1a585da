package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// RedisCache keeps product snapshots in redis with a jittered TTL so a
// burst of expirations does not land on the database at once.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

// NewRedisCache constructs RedisCache with the default TTL.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 5 * time.Minute,
	}
}

func (r *RedisCache) Get(ctx context.Context, id int64) (*model.Product, error) {
	data, err := r.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &product, nil
}

func (r *RedisCache) Set(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	jitter := time.Duration(rand.Intn(30)) * time.Second
	if err := r.client.Set(ctx, productKey(product.ID), data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context, id int64) error {
	if err := r.client.Del(ctx, productKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}
