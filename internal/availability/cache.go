package availability

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkaufhold/headspa-booking/internal/config"
)

// Cache is a read-through Redis cache for per-date unavailable-slot
// sets.  Entries expire after the configured TTL and are invalidated
// eagerly whenever a mutation notification arrives, so the two
// invalidation rules of the design (TTL and notify-on-mutation) both
// apply.  A nil *Cache is valid and turns every operation into a
// no-op; cache failures degrade to direct store reads and are logged,
// never surfaced to callers.
type Cache struct {
	rdb *redis.Client
	cfg config.CacheConfig
}

// NewCache returns a Cache over the given client, or nil when caching
// is disabled or no client is available.
func NewCache(rdb *redis.Client, cfg config.CacheConfig) *Cache {
	if rdb == nil || !cfg.Enabled {
		return nil
	}
	return &Cache{rdb: rdb, cfg: cfg}
}

func (c *Cache) key(dateKey string) string { return c.cfg.Prefix + ":" + dateKey }

// Get returns the cached unavailable set for a date key, and whether
// an entry was present.
func (c *Cache) Get(ctx context.Context, dateKey string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.key(dateKey)).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// Set stores the unavailable set for a date key with the configured TTL.
func (c *Cache) Set(ctx context.Context, dateKey string, slots []string) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(dateKey), raw, c.cfg.TTL).Err(); err != nil {
		log.Printf("availability-cache: set %s failed: %v", dateKey, err)
	}
}

// MergeSlot adds one slot to an already-cached unavailable set, so a
// just-committed or just-conflicted booking is reflected without a
// full re-fetch.  When no entry is cached there is nothing to merge;
// the next read builds a fresh set anyway.
func (c *Cache) MergeSlot(ctx context.Context, dateKey, slot string) {
	if c == nil {
		return
	}
	slots, ok := c.Get(ctx, dateKey)
	if !ok {
		return
	}
	for _, s := range slots {
		if s == slot {
			return
		}
	}
	c.Set(ctx, dateKey, append(slots, slot))
}

// Flush drops every cached entry.  Called when a blocks-changed
// notification arrives, since block mutations can touch many dates.
func (c *Cache) Flush(ctx context.Context) {
	if c == nil {
		return
	}
	var cursor uint64
	pattern := c.cfg.Prefix + ":*"
	deadline := time.Now().Add(5 * time.Second)
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			log.Printf("availability-cache: flush scan failed: %v", err)
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				log.Printf("availability-cache: flush delete failed: %v", err)
				return
			}
		}
		cursor = next
		if cursor == 0 || time.Now().After(deadline) {
			return
		}
	}
}
