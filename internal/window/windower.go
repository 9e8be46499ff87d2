package window

import (
	"github.com/ytget/yt-browser/internal/model"
)

// Windowing constants
const (
	// VirtualizationThreshold is the collection size at or below which
	// windowing is bypassed and all items render
	VirtualizationThreshold = 50

	// DefaultOverscan is the number of extra rows materialized beyond the
	// viewport in each direction to mask scroll-induced pop-in
	DefaultOverscan = 4

	// DefaultMinColumnWidth is the narrowest a grid column may get before
	// the column count drops
	DefaultMinColumnWidth float32 = 220
)

// Metrics describes the window to materialize: rendering exactly
// items[StartIndex:EndIndex] fills the viewport plus overscan, and
// TotalHeight/TopOffset size the scroll spacers that preserve scrollbar
// proportions.
type Metrics struct {
	StartIndex  int
	EndIndex    int
	TotalHeight float32
	TopOffset   float32
	// WindowHeight is the stacked height of the materialized rows, so
	// TotalHeight - TopOffset - WindowHeight sizes the bottom spacer.
	WindowHeight float32
	Columns      int
}

// BottomOffset returns the height of the spacer below the window
func (m Metrics) BottomOffset() float32 {
	rest := m.TotalHeight - m.TopOffset - m.WindowHeight
	if rest < 0 {
		return 0
	}
	return rest
}

// IsEmpty reports whether nothing should be materialized
func (m Metrics) IsEmpty() bool {
	return m.StartIndex >= m.EndIndex
}

// Windower computes the visible index range of an ordered item list from
// scroll position, container geometry and per-item measured heights. It
// owns only its height cache and derived range state, both disposable and
// reconstructible from the item list at any time.
//
// Two geometries are supported: fixed-height list rows with O(1) index
// arithmetic, and variable-height grid rows where the column count depends
// on the measured container width.
type Windower struct {
	heights *HeightCache

	estimatedHeight float32
	overscan        int
	minColumnWidth  float32

	mode            model.ViewMode
	containerWidth  float32
	containerHeight float32
	scrollTop       float32
}

// New creates a windower with the given estimated item height and overscan
func New(estimatedHeight float32, overscan int) *Windower {
	if overscan < 0 {
		overscan = 0
	}
	return &Windower{
		heights:         NewHeightCache(),
		estimatedHeight: estimatedHeight,
		overscan:        overscan,
		minColumnWidth:  DefaultMinColumnWidth,
		mode:            model.ViewModeList,
	}
}

// SetGeometry records the host container size. The windower never owns
// layout; it only consumes what resize observation reports.
func (w *Windower) SetGeometry(width, height float32) {
	w.containerWidth = width
	w.containerHeight = height
}

// SetScrollTop records the current scroll offset
func (w *Windower) SetScrollTop(top float32) {
	w.scrollTop = top
}

// SetViewMode switches between list and grid geometry
func (w *Windower) SetViewMode(mode model.ViewMode) {
	w.mode = mode
}

// ViewMode returns the active geometry mode
func (w *Windower) ViewMode() model.ViewMode {
	return w.mode
}

// SetEstimatedHeight updates the fallback height used for unmeasured items
func (w *Windower) SetEstimatedHeight(height float32) {
	if height > 0 {
		w.estimatedHeight = height
	}
}

// SetMinColumnWidth updates the narrowest allowed grid column
func (w *Windower) SetMinColumnWidth(width float32) {
	if width > 0 {
		w.minColumnWidth = width
	}
}

// Measure records a post-paint item height and reports whether the cached
// value changed enough to require recomputation.
func (w *Windower) Measure(key string, height float32) bool {
	if height <= 0 {
		return false
	}
	return w.heights.Set(key, height)
}

// ResetHeights drops all cached measurements, e.g. when the item universe
// is replaced wholesale.
func (w *Windower) ResetHeights() {
	w.heights.Reset()
}

// Columns returns how many grid columns fit the current container width.
// List mode always has one column.
func (w *Windower) Columns() int {
	if w.mode != model.ViewModeGrid {
		return 1
	}
	cols := int(w.containerWidth / w.minColumnWidth)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// Compute returns the window metrics for the given ordered item keys.
// A missing or negative container height yields an empty range; callers
// render nothing rather than crash.
func (w *Windower) Compute(keys []string) Metrics {
	n := len(keys)
	w.heights.SyncCount(n)

	cols := w.Columns()
	if n == 0 || w.containerHeight <= 0 {
		return Metrics{Columns: cols}
	}

	rows := (n + cols - 1) / cols

	// Small collections bypass windowing entirely: the non-virtualized
	// path is the degenerate case of the same contract.
	if n <= VirtualizationThreshold {
		total := w.stackHeight(keys, 0, rows, cols)
		return Metrics{
			StartIndex:   0,
			EndIndex:     n,
			TotalHeight:  total,
			WindowHeight: total,
			Columns:      cols,
		}
	}

	topRow := w.topRow(keys, rows, cols)

	startRow := topRow - w.overscan
	if startRow < 0 {
		startRow = 0
	}

	// Fill the viewport plus overscan in both directions.
	limit := w.containerHeight + float32(w.overscan*2)*w.estimatedHeight
	var visible float32
	endRow := startRow
	for endRow < rows && visible < limit {
		visible += w.rowHeight(keys, endRow, cols)
		endRow++
	}
	endRow += w.overscan
	if endRow > rows {
		endRow = rows
	}

	endIndex := endRow * cols
	if endIndex > n {
		endIndex = n
	}

	return Metrics{
		StartIndex:   startRow * cols,
		EndIndex:     endIndex,
		TotalHeight:  w.stackHeight(keys, 0, rows, cols),
		TopOffset:    w.stackHeight(keys, 0, startRow, cols),
		WindowHeight: w.stackHeight(keys, startRow, endRow, cols),
		Columns:      cols,
	}
}

// TopIndex returns the linear index of the topmost visible item under the
// current geometry, used to re-anchor scroll across view-mode switches.
func (w *Windower) TopIndex(keys []string) int {
	n := len(keys)
	if n == 0 || w.containerHeight <= 0 {
		return 0
	}

	cols := w.Columns()
	rows := (n + cols - 1) / cols
	return w.topRow(keys, rows, cols) * cols
}

// topRow locates the row containing the scroll offset. Fixed-height rows
// use direct index arithmetic; grid rows accumulate measured heights until
// the running total first exceeds the offset.
func (w *Windower) topRow(keys []string, rows, cols int) int {
	if rows <= 0 {
		return 0
	}

	if w.mode != model.ViewModeGrid {
		row := int(w.scrollTop / w.estimatedHeight)
		if row < 0 {
			row = 0
		}
		if row > rows-1 {
			row = rows - 1
		}
		return row
	}

	var acc float32
	for row := 0; row < rows; row++ {
		rh := w.rowHeight(keys, row, cols)
		if acc+rh > w.scrollTop {
			return row
		}
		acc += rh
	}
	return rows - 1
}

// ScrollForIndex returns the scroll offset that places the given linear
// index at the top of the viewport under the current geometry.
func (w *Windower) ScrollForIndex(keys []string, index int) float32 {
	n := len(keys)
	if n == 0 || index <= 0 {
		return 0
	}
	if index >= n {
		index = n - 1
	}

	cols := w.Columns()
	return w.stackHeight(keys, 0, index/cols, cols)
}

// rowHeight returns the height of one row. List rows are fixed-height so
// the estimate is authoritative; grid rows take the tallest measured cell,
// falling back to the estimate for unmeasured ones.
func (w *Windower) rowHeight(keys []string, row, cols int) float32 {
	if w.mode != model.ViewModeGrid {
		return w.estimatedHeight
	}

	h := w.estimatedHeight
	start := row * cols
	end := start + cols
	if end > len(keys) {
		end = len(keys)
	}
	for i := start; i < end; i++ {
		if mh, ok := w.heights.Get(keys[i]); ok && mh > h {
			h = mh
		}
	}
	return h
}

// stackHeight sums row heights for rows in [fromRow, toRow)
func (w *Windower) stackHeight(keys []string, fromRow, toRow, cols int) float32 {
	if w.mode != model.ViewModeGrid {
		return float32(toRow-fromRow) * w.estimatedHeight
	}

	var total float32
	for row := fromRow; row < toRow; row++ {
		total += w.rowHeight(keys, row, cols)
	}
	return total
}
