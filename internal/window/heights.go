package window

// Height cache behavior constants
const (
	// HeightInvalidationPx is the minimum measured change that invalidates
	// a cached height; sub-pixel jitter below it is ignored to avoid
	// measure/recompute feedback loops
	HeightInvalidationPx float32 = 1.0

	// HeightCacheResetDelta is the item-count change considered drastic
	// enough to drop all cached measurements, bounding memory when many
	// different collections are browsed in one session
	HeightCacheResetDelta = 200
)

// HeightCache maps stable item keys to last-measured pixel heights. Keys
// rather than indices are used because indices shift under filtering,
// pagination and view-mode changes. The cache is per-renderer-instance,
// never persisted, and reconstructible from scratch at any time.
type HeightCache struct {
	heights   map[string]float32
	lastCount int
}

// NewHeightCache creates an empty height cache
func NewHeightCache() *HeightCache {
	return &HeightCache{heights: make(map[string]float32)}
}

// Get returns the cached height for a key
func (hc *HeightCache) Get(key string) (float32, bool) {
	h, ok := hc.heights[key]
	return h, ok
}

// Set stores a measured height and reports whether the value changed by
// more than the invalidation threshold.
func (hc *HeightCache) Set(key string, height float32) bool {
	prev, ok := hc.heights[key]
	if ok {
		diff := height - prev
		if diff < 0 {
			diff = -diff
		}
		if diff <= HeightInvalidationPx {
			return false
		}
	}
	hc.heights[key] = height
	return true
}

// Len returns the number of cached measurements
func (hc *HeightCache) Len() int {
	return len(hc.heights)
}

// SyncCount observes the current item count and clears the cache when the
// count drops to zero or changes drastically since the last observation.
func (hc *HeightCache) SyncCount(count int) {
	defer func() { hc.lastCount = count }()

	if count == 0 {
		hc.Reset()
		return
	}

	delta := count - hc.lastCount
	if delta < 0 {
		delta = -delta
	}
	if hc.lastCount > 0 && delta > HeightCacheResetDelta {
		hc.Reset()
	}
}

// Reset drops all cached measurements
func (hc *HeightCache) Reset() {
	hc.heights = make(map[string]float32)
}
