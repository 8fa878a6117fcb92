package healthcheck

import (
	"context"
	"sync"
	"time"

	"github.com/mileusna/crontab"
	"vowboard.io/planner-gateway/app/domain/schema"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/utils/logger"
)

type Status struct {
	Cache     bool      `json:"cache"`
	Remote    bool      `json:"remote"`
	CheckedAt time.Time `json:"checked_at"`
}

func (s Status) Healthy() bool {
	return s.Cache && s.Remote
}

type HealthcheckCrontabService struct {
	Cache  cache.CacheService
	Remote schema.ColumnChecker

	mu     sync.RWMutex
	status Status
}

func NewService(cacheService cache.CacheService, remote schema.ColumnChecker) *HealthcheckCrontabService {
	return &HealthcheckCrontabService{
		Cache:  cacheService,
		Remote: remote,
	}
}

func (hs *HealthcheckCrontabService) Start(ctx context.Context, ctab *crontab.Crontab) {
	hs.Check(ctx)
	ctab.AddJob("*/2 * * * *", func() {
		hs.Check(ctx)
	})
}

// Check pings the cache and the remote backend and stores the result.
func (hs *HealthcheckCrontabService) Check(ctx context.Context) Status {
	log := logger.GetLogger()
	status := Status{Cache: true, Remote: true, CheckedAt: time.Now()}

	if err := hs.Cache.HealthCheck(ctx); err != nil {
		log.WithError(err).Warn("healthcheck: cache unreachable")
		status.Cache = false
	}
	if _, err := hs.Remote.HasColumn(ctx, schema.TasksCollection, "id"); err != nil {
		log.WithError(err).Warn("healthcheck: remote backend unreachable")
		status.Remote = false
	}

	hs.mu.Lock()
	hs.status = status
	hs.mu.Unlock()
	return status
}

func (hs *HealthcheckCrontabService) Status() Status {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return hs.status
}
