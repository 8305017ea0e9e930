package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stratocost/stratocost/internal/common/config"
	"github.com/stratocost/stratocost/internal/pricing"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache using Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// catalogSnapshot is the wire form of a cached catalog.
type catalogSnapshot struct {
	Provider  string          `json:"provider"`
	VersionID string          `json:"version_id"`
	Entries   []pricing.Entry `json:"entries"`
}

// NewRedisCache creates a new Redis-backed snapshot cache.
func NewRedisCache(cfg *config.PricingRedisConfig, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "pricing:catalog:"
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (c *RedisCache) key(provider string) string {
	return c.prefix + provider
}

func (c *RedisCache) Get(ctx context.Context, provider string) (*pricing.Catalog, bool, error) {
	data, err := c.client.Get(ctx, c.key(provider)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var snap catalogSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, err
	}
	return pricing.NewCatalog(snap.Provider, snap.VersionID, snap.Entries), true, nil
}

func (c *RedisCache) Set(ctx context.Context, catalog *pricing.Catalog) error {
	snap := catalogSnapshot{
		Provider:  catalog.Provider(),
		VersionID: catalog.VersionID(),
		Entries:   catalog.Entries(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(catalog.Provider()), data, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, provider string) error {
	return c.client.Del(ctx, c.key(provider)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
