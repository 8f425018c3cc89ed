package rfm

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"
	"time"

	"github.com/Veraticus/pedal/internal/model"
)

// DefaultCacheTTL is used when a cache is created with a zero TTL.
const DefaultCacheTTL = 15 * time.Minute

// cacheEntry represents a memoized derivation.
type cacheEntry struct {
	expiry time.Time
	rows   []model.RFMRow
}

// Cache memoizes RFM derivations keyed by a hash of the input records and
// the filter range they were selected with.
type Cache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	now     func() time.Time
	ttl     time.Duration
	mu      sync.RWMutex
	hits    int
	misses  int
	once    sync.Once
}

// NewCache creates a new cache with the specified TTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	cache := &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}

	go cache.cleanup()

	return cache
}

// Key hashes the filter range and every record's date and count.
func Key(records []model.ActivityRecord, rng model.DateRange) string {
	h := sha256.New()
	var buf [8]byte

	writeDate := func(t time.Time) {
		var v int64
		if !t.IsZero() {
			v = model.CalendarDate(t).Unix()
		}
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}

	writeDate(rng.Start)
	writeDate(rng.End)
	binary.BigEndian.PutUint64(buf[:], uint64(len(records)))
	_, _ = h.Write(buf[:])
	for _, rec := range records {
		writeDate(rec.Date)
		binary.BigEndian.PutUint64(buf[:], uint64(int64(rec.Count)))
		_, _ = h.Write(buf[:])
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves rows from the cache if they exist and haven't expired.
// The returned slice is shared and must not be modified.
func (c *Cache) Get(key string) ([]model.RFMRow, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists || c.now().After(entry.expiry) {
		c.misses++
		return nil, false
	}

	c.hits++
	return entry.rows, true
}

// Set stores rows in the cache.
func (c *Cache) Set(key string, rows []model.RFMRow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		rows:   rows,
		expiry: c.now().Add(c.ttl),
	}
}

// Derive returns the memoized derivation for records selected by rng,
// computing it on a miss.
func (c *Cache) Derive(records []model.ActivityRecord, rng model.DateRange) []model.RFMRow {
	key := Key(records, rng)
	if rows, ok := c.Get(key); ok {
		return rows
	}

	rows := Derive(records)
	c.Set(key, rows)
	return rows
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Len returns the number of entries in the cache.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stopCh) })
}

// cleanup periodically removes expired entries.
func (c *Cache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, key)
		}
	}
}
