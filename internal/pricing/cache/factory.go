package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stratocost/stratocost/internal/common/config"
)

// NewCache creates a snapshot cache based on configuration
func NewCache(logger *zap.Logger, cfg *config.PricingCacheConfig) (Cache, error) {
	logger.Info("Initializing pricing snapshot cache", zap.String("type", cfg.Type))
	switch cfg.Type {
	case "memory":
		return NewMemoryCache(cfg.TTL), nil
	case "redis":
		return NewRedisCache(&cfg.Redis, cfg.TTL)
	default:
		return nil, fmt.Errorf("unsupported pricing cache type: %s", cfg.Type)
	}
}
