package window

import (
	"fmt"
	"testing"

	"github.com/ytget/yt-browser/internal/model"
)

func makeKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%04d", i)
	}
	return keys
}

func TestSmallCollectionBypassesWindowing(t *testing.T) {
	w := New(72, DefaultOverscan)
	w.SetGeometry(800, 600)
	keys := makeKeys(50)

	// Regardless of scroll position, all items render
	for _, scroll := range []float32{0, 500, 99999} {
		w.SetScrollTop(scroll)
		m := w.Compute(keys)

		if m.StartIndex != 0 {
			t.Errorf("scroll=%.0f: expected StartIndex 0, got %d", scroll, m.StartIndex)
		}
		if m.EndIndex != 50 {
			t.Errorf("scroll=%.0f: expected EndIndex 50, got %d", scroll, m.EndIndex)
		}
		if m.TopOffset != 0 {
			t.Errorf("scroll=%.0f: expected TopOffset 0, got %.1f", scroll, m.TopOffset)
		}
	}
}

func TestWindowBoundsInvariant(t *testing.T) {
	w := New(72, DefaultOverscan)
	w.SetGeometry(800, 600)
	keys := makeKeys(5000)

	for _, scroll := range []float32{0, 100, 10000, 72 * 4999, 99999999} {
		w.SetScrollTop(scroll)
		m := w.Compute(keys)

		if m.StartIndex > m.EndIndex {
			t.Errorf("scroll=%.0f: StartIndex %d > EndIndex %d", scroll, m.StartIndex, m.EndIndex)
		}
		if m.EndIndex > len(keys) {
			t.Errorf("scroll=%.0f: EndIndex %d exceeds item count %d", scroll, m.EndIndex, len(keys))
		}
		if m.StartIndex < 0 {
			t.Errorf("scroll=%.0f: negative StartIndex %d", scroll, m.StartIndex)
		}

		// The window must cover at least the viewport height
		covered := float32(m.EndIndex-m.StartIndex) * 72
		if m.EndIndex < len(keys) && covered < 600 {
			t.Errorf("scroll=%.0f: window covers %.0fpx, viewport is 600px", scroll, covered)
		}
	}
}

func TestListWindowTracksScroll(t *testing.T) {
	w := New(100, 2)
	w.SetGeometry(800, 500)
	keys := makeKeys(1000)

	w.SetScrollTop(0)
	m := w.Compute(keys)
	if m.StartIndex != 0 {
		t.Errorf("Expected StartIndex 0 at top, got %d", m.StartIndex)
	}

	// Scrolled to item 50: overscan pulls the start back by 2 rows
	w.SetScrollTop(5000)
	m = w.Compute(keys)
	if m.StartIndex != 48 {
		t.Errorf("Expected StartIndex 48, got %d", m.StartIndex)
	}
	if m.TopOffset != 4800 {
		t.Errorf("Expected TopOffset 4800, got %.0f", m.TopOffset)
	}
	if m.TotalHeight != 100000 {
		t.Errorf("Expected TotalHeight 100000, got %.0f", m.TotalHeight)
	}
	if m.TopOffset+m.WindowHeight+m.BottomOffset() != m.TotalHeight {
		t.Errorf("Expected spacers and window to sum to TotalHeight, got %.0f + %.0f + %.0f",
			m.TopOffset, m.WindowHeight, m.BottomOffset())
	}

	// End covers viewport plus overscan on both sides
	if m.EndIndex <= 55 {
		t.Errorf("Expected EndIndex beyond visible bottom, got %d", m.EndIndex)
	}
}

func TestZeroGeometryYieldsEmptyRange(t *testing.T) {
	w := New(72, DefaultOverscan)
	keys := makeKeys(500)

	w.SetGeometry(800, 0)
	if m := w.Compute(keys); !m.IsEmpty() {
		t.Errorf("Expected empty range for zero height, got [%d, %d)", m.StartIndex, m.EndIndex)
	}

	w.SetGeometry(800, -50)
	if m := w.Compute(keys); !m.IsEmpty() {
		t.Errorf("Expected empty range for negative height, got [%d, %d)", m.StartIndex, m.EndIndex)
	}
}

func TestEmptyCollection(t *testing.T) {
	w := New(72, DefaultOverscan)
	w.SetGeometry(800, 600)

	m := w.Compute(nil)
	if !m.IsEmpty() {
		t.Errorf("Expected empty range for empty collection, got [%d, %d)", m.StartIndex, m.EndIndex)
	}
	if m.TotalHeight != 0 {
		t.Errorf("Expected zero TotalHeight, got %.1f", m.TotalHeight)
	}
}

func TestGridColumnsFromWidth(t *testing.T) {
	w := New(180, DefaultOverscan)
	w.SetViewMode(model.ViewModeGrid)
	w.SetMinColumnWidth(220)

	tests := []struct {
		width    float32
		expected int
	}{
		{100, 1},
		{220, 1},
		{440, 2},
		{900, 4},
		{0, 1},
	}

	for _, tt := range tests {
		w.SetGeometry(tt.width, 600)
		if got := w.Columns(); got != tt.expected {
			t.Errorf("width=%.0f: expected %d columns, got %d", tt.width, tt.expected, got)
		}
	}
}

func TestGridWindowAlignsToRows(t *testing.T) {
	w := New(200, 1)
	w.SetViewMode(model.ViewModeGrid)
	w.SetMinColumnWidth(220)
	w.SetGeometry(660, 600) // 3 columns
	keys := makeKeys(300)

	w.SetScrollTop(2000) // row 10
	m := w.Compute(keys)

	if m.Columns != 3 {
		t.Fatalf("Expected 3 columns, got %d", m.Columns)
	}
	if m.StartIndex%3 != 0 {
		t.Errorf("Expected StartIndex aligned to row boundary, got %d", m.StartIndex)
	}
	if m.StartIndex != 27 { // row 10 minus 1 row overscan
		t.Errorf("Expected StartIndex 27, got %d", m.StartIndex)
	}
	if m.TotalHeight != 100*200 {
		t.Errorf("Expected TotalHeight 20000, got %.0f", m.TotalHeight)
	}
}

func TestGridMeasuredRowHeights(t *testing.T) {
	w := New(200, 0)
	w.SetViewMode(model.ViewModeGrid)
	w.SetMinColumnWidth(220)
	w.SetGeometry(440, 600) // 2 columns
	keys := makeKeys(100)

	// Tallest cell defines the row: first row grows to 300
	if !w.Measure(keys[1], 300) {
		t.Error("Expected first measurement to register a change")
	}

	w.SetScrollTop(0)
	m := w.Compute(keys)
	expected := float32(300 + 49*200)
	if m.TotalHeight != expected {
		t.Errorf("Expected TotalHeight %.0f, got %.0f", expected, m.TotalHeight)
	}

	// Scrolling past the taller first row shifts the anchor accordingly
	w.SetScrollTop(310)
	if idx := w.TopIndex(keys); idx != 2 {
		t.Errorf("Expected top index 2 after first row, got %d", idx)
	}
}

func TestMeasureSubPixelJitterIgnored(t *testing.T) {
	w := New(72, DefaultOverscan)

	if !w.Measure("k", 80) {
		t.Error("Expected initial measurement to register")
	}
	if w.Measure("k", 80.5) {
		t.Error("Expected sub-pixel change to be ignored")
	}
	if !w.Measure("k", 82) {
		t.Error("Expected change above threshold to register")
	}
	if w.Measure("k", 0) {
		t.Error("Expected non-positive measurement to be ignored")
	}
}

func TestViewModeSwitchReanchoring(t *testing.T) {
	keys := makeKeys(600)

	w := New(72, DefaultOverscan)
	w.SetGeometry(660, 600)
	w.SetScrollTop(72 * 120) // item 120 at top in list mode

	topIdx := w.TopIndex(keys)
	if topIdx != 120 {
		t.Fatalf("Expected top index 120 under list geometry, got %d", topIdx)
	}

	// Switch to grid: 3 columns, 200px rows. Item 120 sits in row 40.
	w.SetViewMode(model.ViewModeGrid)
	w.SetMinColumnWidth(220)
	w.SetEstimatedHeight(200)

	newScroll := w.ScrollForIndex(keys, topIdx)
	if newScroll != 40*200 {
		t.Errorf("Expected re-anchored scroll 8000, got %.0f", newScroll)
	}

	// The same linear index is at the top under the new geometry
	w.SetScrollTop(newScroll)
	if got := w.TopIndex(keys); got != 120 {
		t.Errorf("Expected top index 120 after re-anchor, got %d", got)
	}
}

func TestScrollForIndexClamped(t *testing.T) {
	w := New(100, 0)
	w.SetGeometry(800, 600)
	keys := makeKeys(10)

	if got := w.ScrollForIndex(keys, -5); got != 0 {
		t.Errorf("Expected 0 for negative index, got %.0f", got)
	}
	if got := w.ScrollForIndex(keys, 500); got != 900 {
		t.Errorf("Expected offset of last item for out-of-range index, got %.0f", got)
	}
	if got := w.ScrollForIndex(nil, 3); got != 0 {
		t.Errorf("Expected 0 for empty collection, got %.0f", got)
	}
}
