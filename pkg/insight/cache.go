package insight

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/preventive-care-server/internal/domain"
)

// cachedNarrative wraps a stored narrative with its expiry.
type cachedNarrative struct {
	Narrative string    `json:"narrative"`
	CachedAt  time.Time `json:"cached_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Cache stores generated narratives keyed by a digest of the input record
// and result set. It always keeps an in-process LRU layer and optionally
// writes through to Redis so narratives survive restarts.
type Cache struct {
	local *lru.Cache[string, cachedNarrative]
	redis *redis.Client
	ttl   time.Duration
	log   *logrus.Logger
}

// NewCache creates a narrative cache. redisURL may be empty, in which case
// only the in-process layer is used.
func NewCache(size int, ttl time.Duration, redisURL string, logger *logrus.Logger) (*Cache, error) {
	if size <= 0 {
		size = 256
	}
	local, err := lru.New[string, cachedNarrative](size)
	if err != nil {
		return nil, fmt.Errorf("creating narrative cache: %w", err)
	}

	c := &Cache{
		local: local,
		ttl:   ttl,
		log:   logger,
	}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing Redis URL: %w", err)
		}
		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connecting to Redis: %w", err)
		}
		c.redis = client
	}

	return c, nil
}

// Key derives the cache key from the record and the computed result set.
// Two identical inputs always produce identical narratives, so the digest
// covers both.
func Key(rec *domain.PatientRecord, results domain.RiskResultSet) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	enc.Encode(rec)
	enc.Encode(results)
	return fmt.Sprintf("insight:%x", h.Sum(nil))
}

// Get returns a cached narrative and whether it was found.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if entry, ok := c.local.Get(key); ok {
		if time.Now().Before(entry.ExpiresAt) {
			return entry.Narrative, true
		}
		c.local.Remove(key)
	}

	if c.redis == nil {
		return "", false
	}

	val, err := c.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.log.WithError(err).Warn("Narrative cache read failed")
		return "", false
	}

	var entry cachedNarrative
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		c.redis.Del(ctx, key)
		return "", false
	}
	if time.Now().After(entry.ExpiresAt) {
		c.redis.Del(ctx, key)
		return "", false
	}

	// Refill the local layer on a Redis hit
	c.local.Add(key, entry)
	return entry.Narrative, true
}

// Set stores a narrative in both layers.
func (c *Cache) Set(ctx context.Context, key, narrative string) {
	entry := cachedNarrative{
		Narrative: narrative,
		CachedAt:  time.Now(),
		ExpiresAt: time.Now().Add(c.ttl),
	}
	c.local.Add(key, entry)

	if c.redis == nil {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("Narrative cache write failed")
	}
}

// Close releases the Redis connection if one was configured.
func (c *Cache) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
