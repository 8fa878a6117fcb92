package cron

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"vowboard.io/planner-gateway/app/domain/presentation"
	"vowboard.io/planner-gateway/app/domain/schema"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/utils/logger"
	"vowboard.io/planner-gateway/config/environment_variables"
)

// PresentationIdleTimeout is how long an untouched presentation session lives.
const PresentationIdleTimeout = 30 * time.Minute

type CronService struct {
	Cache         cache.CacheService
	Capabilities  *schema.CapabilityService
	Presentations *presentation.PresentationService
}

func NewService(cacheService cache.CacheService, capabilities *schema.CapabilityService, presentations *presentation.PresentationService) *CronService {
	return &CronService{
		Cache:         cacheService,
		Capabilities:  capabilities,
		Presentations: presentations,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	cs.Capabilities.Load(ctx)

	ctab.AddJob("* * * * *", func() {
		cs.sweep(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
		logger.SetLevel(environment_variables.EnvironmentVariables.LOG_LEVEL)
	})
	ctab.AddJob("*/10 * * * *", func() {
		cs.Capabilities.Refresh(ctx)
	})
}

func (cs *CronService) sweep(ctx context.Context) {
	log := logger.GetLogger()
	if n := cs.Cache.PurgeExpired(ctx); n > 0 {
		log.Debugf("cron service: purged %d expired cache entries", n)
	}
	if n := cs.Presentations.PurgeIdle(PresentationIdleTimeout); n > 0 {
		log.Infof("cron service: closed %d idle presentation sessions", n)
	}
}
