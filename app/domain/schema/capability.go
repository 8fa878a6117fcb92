package schema

import (
	"context"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"vowboard.io/planner-gateway/app/infrastructure/cache"
	"vowboard.io/planner-gateway/app/utils/logger"
)

const (
	TasksCollection      = "tasks"
	DocumentsCollection  = "documents"
	TaskGroupsCollection = "task_groups"

	OrderColumn = "order"

	capabilitiesCacheKey = "schema_capabilities"
	capabilitiesTTL      = 15 * time.Minute
)

var OrderedCollections = []string{TasksCollection, DocumentsCollection, TaskGroupsCollection}

type ColumnChecker interface {
	HasColumn(ctx context.Context, table string, column string) (bool, error)
}

// CapabilityService answers whether each collection stores a manual order.
// Flags are checked once and kept for the session; unknown collections and
// failed checks count as supported so writes are still attempted.
type CapabilityService struct {
	checker ColumnChecker
	cache   cache.CacheService

	mu       sync.RWMutex
	ordering map[string]bool
}

func NewCapabilityService(checker ColumnChecker, cacheService cache.CacheService) *CapabilityService {
	return &CapabilityService{
		checker:  checker,
		cache:    cacheService,
		ordering: make(map[string]bool),
	}
}

func (s *CapabilityService) OrderingSupported(collection string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	supported, ok := s.ordering[collection]
	return !ok || supported
}

func (s *CapabilityService) Snapshot() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(OrderedCollections))
	for _, collection := range OrderedCollections {
		supported, ok := s.ordering[collection]
		out[collection] = !ok || supported
	}
	return out
}

// MarkUnsupported records a missing ordering column discovered at write time.
func (s *CapabilityService) MarkUnsupported(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ordering[collection] = false
}

// Load uses flags another replica already checked, checking otherwise.
func (s *CapabilityService) Load(ctx context.Context) {
	var flags map[string]bool
	if s.cache.Get(ctx, capabilitiesCacheKey, &flags) {
		s.store(flags)
		return
	}
	s.Refresh(ctx)
}

// Refresh checks every ordered collection. With a Redis cache, replicas
// serialize on a shared lock and publish the result for each other.
func (s *CapabilityService) Refresh(ctx context.Context) {
	log := logger.GetLogger()
	if redisCache, ok := s.cache.(*cache.RedisCacheService); ok {
		mutex := redisCache.NewMutex(cache.CapabilityLockKey, redsync.WithExpiry(30*time.Second), redsync.WithTries(1))
		if err := mutex.LockContext(ctx); err != nil {
			log.Debugf("schema capability refresh skipped, another replica holds the lock: %v", err)
			return
		}
		defer func() {
			if _, err := mutex.UnlockContext(ctx); err != nil {
				log.Warnf("schema capability lock release failed: %v", err)
			}
		}()
	}

	flags := make(map[string]bool, len(OrderedCollections))
	for _, collection := range OrderedCollections {
		supported, err := s.checker.HasColumn(ctx, collection, OrderColumn)
		if err != nil {
			log.WithError(err).Warnf("schema check failed for %s, assuming ordering is supported", collection)
			supported = true
		}
		if !supported {
			log.Warnf("collection %s has no %q column, manual ordering is kept locally", collection, OrderColumn)
		}
		flags[collection] = supported
	}
	s.store(flags)
	s.cache.Set(ctx, capabilitiesCacheKey, flags, capabilitiesTTL)
}

func (s *CapabilityService) store(flags map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for collection, supported := range flags {
		s.ordering[collection] = supported
	}
}
