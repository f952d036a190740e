package giftfeed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"barkday/internal/domain/gifts"
	"barkday/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

const DefaultCacheKey = "barkday:gifts:catalog"

// RedisCache envuelve otro Source y guarda el catálogo ya decodificado.
// Si Redis falla se sigue con el Source de abajo: el cache nunca rompe la búsqueda.
type RedisCache struct {
	next gifts.Source
	rdb  redis.Cmdable
	key  string
	ttl  time.Duration
	log  logger.Logger
}

func NewRedisCache(next gifts.Source, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *RedisCache {
	if log == nil {
		log = logger.NewNop()
	}
	return &RedisCache{
		next: next,
		rdb:  rdb,
		key:  DefaultCacheKey,
		ttl:  ttl,
		log:  log,
	}
}

func (c *RedisCache) Catalog(ctx context.Context) ([]gifts.Gift, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var items []gifts.Gift
		if jerr := json.Unmarshal(raw, &items); jerr == nil {
			return items, nil
		}
		c.log.Warn("gift cache entry unreadable", map[string]any{"key": c.key})
	case errors.Is(err, redis.Nil):
		// miss
	default:
		c.log.Warn("gift cache get failed", map[string]any{"key": c.key, "err": err})
	}

	items, err := c.next.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(items)
	if err != nil {
		return items, nil
	}
	if err := c.rdb.Set(ctx, c.key, b, c.ttl).Err(); err != nil {
		c.log.Warn("gift cache set failed", map[string]any{"key": c.key, "err": err})
	}
	return items, nil
}

// Invalidate borra la entrada (p.ej. cuando cambia el feed).
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, c.key).Err()
}
