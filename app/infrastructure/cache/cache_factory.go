package cache

import (
	"strings"

	"vowboard.io/planner-gateway/app/utils/logger"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// NewCacheService creates a cache service based on configuration
func NewCacheService() CacheService {
	cacheType := strings.ToLower(environment_variables.EnvironmentVariables.CACHE_TYPE)

	switch cacheType {
	case "redis":
		return NewRedisCacheService()
	case "none":
		return &NoOpCacheService{}
	case "", "memory":
		return NewMemoryCacheService(SystemClock{})
	default:
		logger.GetLogger().Warnf("unknown CACHE_TYPE %q, using memory cache", cacheType)
		return NewMemoryCacheService(SystemClock{})
	}
}
