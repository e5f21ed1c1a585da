package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/elijahkelechi/Beautytrendy-API/internal/config"
)

// Module wires the product cache; without a redis address a noop cache is used.
var Module = fx.Provide(newProductCache)

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
}

func newProductCache(p cacheParams) ProductCache {
	if p.Config.RedisAddress == "" {
		return Noop{}
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return NewRedisCache(client)
}
