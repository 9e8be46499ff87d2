package window

import (
	"fmt"
	"testing"
)

func TestHeightCacheSetThreshold(t *testing.T) {
	hc := NewHeightCache()

	if !hc.Set("a", 72) {
		t.Error("Expected first Set to report a change")
	}
	if hc.Set("a", 72.8) {
		t.Error("Expected change within threshold to be absorbed")
	}
	if h, _ := hc.Get("a"); h != 72 {
		t.Errorf("Expected absorbed value to keep 72, got %.1f", h)
	}
	if !hc.Set("a", 74) {
		t.Error("Expected change beyond threshold to register")
	}
	if h, _ := hc.Get("a"); h != 74 {
		t.Errorf("Expected 74 after update, got %.1f", h)
	}
}

func TestHeightCacheGetMissing(t *testing.T) {
	hc := NewHeightCache()
	if _, ok := hc.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}
}

func TestHeightCacheSyncCountResets(t *testing.T) {
	hc := NewHeightCache()
	for i := 0; i < 10; i++ {
		hc.Set(fmt.Sprintf("k%d", i), 72)
	}

	// Small drift keeps measurements
	hc.SyncCount(100)
	hc.SyncCount(150)
	if hc.Len() != 10 {
		t.Errorf("Expected cache to survive small count drift, got %d entries", hc.Len())
	}

	// Drastic jump means a different collection is being shown
	hc.SyncCount(500)
	if hc.Len() != 0 {
		t.Errorf("Expected reset after drastic count change, got %d entries", hc.Len())
	}

	hc.Set("x", 72)
	hc.SyncCount(0)
	if hc.Len() != 0 {
		t.Errorf("Expected reset when count drops to zero, got %d entries", hc.Len())
	}
}

func TestHeightCacheFirstObservationKeepsEntries(t *testing.T) {
	hc := NewHeightCache()
	hc.Set("a", 72)

	// The very first count observation is never "drastic"
	hc.SyncCount(5000)
	if hc.Len() != 1 {
		t.Errorf("Expected measurements to survive first observation, got %d entries", hc.Len())
	}
}
