package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"vowboard.io/planner-gateway/app/utils/logger"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// expired reports whether the entry must no longer be served at now.
func (e memoryEntry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// MemoryCacheService is a process-wide TTL store. Values are kept as JSON
// snapshots so callers never share mutable state with the cache.
type MemoryCacheService struct {
	mu      sync.Mutex
	clock   Clock
	entries map[string]memoryEntry
}

func NewMemoryCacheService(clock Clock) *MemoryCacheService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &MemoryCacheService{
		clock:   clock,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryCacheService) Get(ctx context.Context, key string, dest any) bool {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if ok && entry.expired(m.clock.Now()) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(entry.value, dest); err != nil {
		logger.GetLogger().Warnf("memory cache: failed to decode %s: %v", key, err)
		return false
	}
	return true
}

func (m *MemoryCacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	encoded, err := json.Marshal(value)
	if err != nil {
		logger.GetLogger().Warnf("memory cache: failed to encode %s: %v", key, err)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		value:     encoded,
		expiresAt: m.clock.Now().Add(ttl),
	}
}

func (m *MemoryCacheService) GetWithFallback(ctx context.Context, key string, dest any, fallback func() (any, error), ttl time.Duration) error {
	if m.Get(ctx, key, dest) {
		return nil
	}
	value, err := fallback()
	if err != nil {
		return fmt.Errorf("fallback function failed: %w", err)
	}
	m.Set(ctx, key, value, ttl)
	return copyInto(value, dest)
}

func (m *MemoryCacheService) Invalidate(ctx context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.entries, key)
	}
}

func (m *MemoryCacheService) InvalidatePrefix(ctx context.Context, prefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
}

func (m *MemoryCacheService) PurgeExpired(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	purged := 0
	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
			purged++
		}
	}
	return purged
}

// Len counts stored entries, including expired ones not yet purged.
func (m *MemoryCacheService) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryCacheService) HealthCheck(ctx context.Context) error {
	return nil
}

func (m *MemoryCacheService) Close() error {
	return nil
}

func copyInto(value any, dest any) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal fallback value: %w", err)
	}
	return json.Unmarshal(jsonValue, dest)
}
