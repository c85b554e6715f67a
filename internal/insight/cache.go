package insight

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache keeps recent analyses for a short TTL so an identical snapshot
// re-submitted immediately (a double click, a page refresh) does not pay for
// a second upstream call. Misses are always safe.
type Cache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewCache builds a TTL cache. A non-positive TTL disables caching entirely.
func NewCache(ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		return nil, nil
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 12,
		MaxCost:     1 << 8,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &Cache{cache: cache, ttl: ttl}, nil
}

// Key derives the cache key from the exact prompt text.
func Key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) Get(key string) (Analysis, bool) {
	if c == nil {
		return Analysis{}, false
	}

	value, ok := c.cache.Get(key)
	if !ok {
		return Analysis{}, false
	}

	analysis, ok := value.(Analysis)
	return analysis, ok
}

func (c *Cache) Set(key string, analysis Analysis) {
	if c == nil {
		return
	}

	c.cache.SetWithTTL(key, analysis, 1, c.ttl)
}
