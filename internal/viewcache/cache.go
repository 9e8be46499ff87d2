package viewcache

import (
	"sync"
	"time"

	"github.com/ytget/yt-browser/internal/model"
)

// DefaultTTL is how long a cached collection stays fresh, counted from the
// moment the collection finished loading rather than from cache insertion.
const DefaultTTL = 10 * time.Minute

// Snapshot is everything needed to restore a collection screen: the loaded
// collection and the browsing state the user left it in.
type Snapshot struct {
	Collection *model.CollectionInfo
	UIState    *model.ViewState
}

// Cache is an in-memory TTL cache of collection snapshots keyed by source
// URL. One snapshot per key; storing again replaces the previous one.
type Cache struct {
	mu   sync.RWMutex
	data map[string]Snapshot
	ttl  time.Duration
	now  func() time.Time
}

// New returns an empty cache with the default TTL
func New() *Cache {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL returns an empty cache with the given TTL
func NewWithTTL(ttl time.Duration) *Cache {
	return &Cache{
		data: make(map[string]Snapshot),
		ttl:  ttl,
		now:  time.Now,
	}
}

// SetClock replaces the time source, for tests
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Get returns the cached snapshot or false if absent or expired. Expiry is
// measured against the collection's LoadedAt timestamp, so a collection
// loaded long before it was cached can come back already stale.
func (c *Cache) Get(key string) (Snapshot, bool) {
	c.mu.RLock()
	snap, ok := c.data[key]
	now := c.now()
	c.mu.RUnlock()

	if !ok || snap.Collection == nil {
		return Snapshot{}, false
	}
	if now.After(snap.Collection.LoadedAt.Add(c.ttl)) {
		return Snapshot{}, false
	}
	return snap, true
}

// SetCollection stores a freshly loaded collection, replacing any previous
// snapshot for the key. The UI state starts out as given; pass the state
// the screen is showing, or a fresh one.
func (c *Cache) SetCollection(key string, collection *model.CollectionInfo, state *model.ViewState) {
	c.mu.Lock()
	c.data[key] = Snapshot{Collection: collection, UIState: state}
	c.mu.Unlock()
}

// SetUIState updates only the browsing state of an existing snapshot. A
// missing or expired snapshot is left alone: state without its collection
// is useless.
func (c *Cache) SetUIState(key string, state *model.ViewState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, ok := c.data[key]
	if !ok || snap.Collection == nil {
		return
	}
	if c.now().After(snap.Collection.LoadedAt.Add(c.ttl)) {
		delete(c.data, key)
		return
	}
	snap.UIState = state
	c.data[key] = snap
}

// Invalidate removes one snapshot, typically before a forced reload
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
}

// Clear removes all snapshots
func (c *Cache) Clear() {
	c.mu.Lock()
	c.data = make(map[string]Snapshot)
	c.mu.Unlock()
}

// Len returns the number of stored snapshots, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
