package ui

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-browser/internal/config"
	"github.com/ytget/yt-browser/internal/loader"
	"github.com/ytget/yt-browser/internal/model"
	"github.com/ytget/yt-browser/internal/viewcache"
	"github.com/ytget/yt-browser/internal/window"
)

// BrowseScreen shows one collection: a windowed, searchable entry list with
// selection. Only the entries inside the computed window are materialized
// as widgets; transparent spacers above and below keep the scrollbar
// proportional to the whole collection.
type BrowseScreen struct {
	settings     *config.Settings
	localization *Localization
	cache        *viewcache.Cache
	loader       *loader.Service
	windower     *window.Windower

	sourceURL  string
	collection *model.CollectionInfo
	state      *model.ViewState
	status     model.LoadStatus
	loadErr    error
	filtered   []model.CollectionEntry

	// UI components
	scroll      *container.Scroll
	listBox     *fyne.Container
	searchEntry *widget.Entry
	countLabel  *widget.Label
	selectBtn   *widget.Button
	deselectBtn *widget.Button
	modeBtn     *widget.Button
	root        *fyne.Container

	// Rendered window state, reused across scrolls
	rendered map[string]*EntryRow

	searchMu    sync.Mutex
	searchTimer *time.Timer

	scrollBusy     bool
	measurePending bool
	destroyed      atomic.Bool

	// Callbacks
	onStatus   func(message string, busy bool)
	onDownload func(collection *model.CollectionInfo, state *model.ViewState)
	onRefresh  func(sourceURL string)
}

// NewBrowseScreen creates a browse screen over the given services
func NewBrowseScreen(settings *config.Settings, localization *Localization, cache *viewcache.Cache, loaderSvc *loader.Service) *BrowseScreen {
	overscan := RowOverscan
	if fyne.CurrentDevice().IsMobile() {
		overscan = MobileRowOverscan
	}

	bs := &BrowseScreen{
		settings:     settings,
		localization: localization,
		cache:        cache,
		loader:       loaderSvc,
		windower:     window.New(EntryRowHeight, overscan),
		status:       model.LoadStatusIdle,
		rendered:     make(map[string]*EntryRow),
	}
	bs.windower.SetMinColumnWidth(GridMinColumnWidth)
	bs.createUI()
	return bs
}

// SetCallbacks sets the status, download and refresh callbacks
func (bs *BrowseScreen) SetCallbacks(
	onStatus func(message string, busy bool),
	onDownload func(collection *model.CollectionInfo, state *model.ViewState),
	onRefresh func(sourceURL string),
) {
	bs.onStatus = onStatus
	bs.onDownload = onDownload
	bs.onRefresh = onRefresh
}

// Container returns the screen's root container
func (bs *BrowseScreen) Container() fyne.CanvasObject {
	return bs.root
}

// createUI creates the UI components
func (bs *BrowseScreen) createUI() {
	bs.searchEntry = widget.NewEntry()
	bs.searchEntry.SetPlaceHolder(bs.localization.GetText(KeySearchEntries))
	bs.searchEntry.OnChanged = bs.onSearchChanged

	bs.countLabel = widget.NewLabel("")

	bs.selectBtn = widget.NewButton(bs.localization.GetText(KeySelectAll), bs.onSelectAll)
	bs.deselectBtn = widget.NewButton(bs.localization.GetText(KeyDeselectAll), bs.onDeselectAll)
	bs.modeBtn = widget.NewButton(IconGridMode, bs.onToggleViewMode)
	bs.modeBtn.Importance = widget.LowImportance

	bs.listBox = container.NewVBox()
	bs.scroll = container.NewVScroll(bs.listBox)
	bs.scroll.OnScrolled = bs.onScrolled

	toolbar := container.NewBorder(nil, nil,
		container.NewHBox(bs.selectBtn, bs.deselectBtn),
		container.NewHBox(bs.countLabel, bs.modeBtn),
		bs.searchEntry,
	)

	bs.root = container.NewBorder(toolbar, nil, nil, nil,
		newResizeObserver(bs.scroll, bs.onViewportResized))
}

// Open shows the collection at sourceURL, restoring a cached snapshot when
// one is still fresh and loading from scratch otherwise.
func (bs *BrowseScreen) Open(sourceURL string) {
	if bs.sourceURL != "" && bs.sourceURL != sourceURL {
		bs.flushState()
	}

	bs.sourceURL = sourceURL
	bs.rendered = make(map[string]*EntryRow)
	bs.windower.ResetHeights()
	bs.loadErr = nil

	if snap, ok := bs.cache.Get(sourceURL); ok {
		log.Printf("Restoring collection from cache: %s", sourceURL)
		bs.collection = snap.Collection
		bs.state = snap.UIState
		if bs.state == nil {
			bs.state = bs.newState()
		}
		bs.status = model.LoadStatusLoaded
		bs.restoreFromState()
		return
	}

	bs.load(sourceURL)
}

// Reload drops caches for the current collection and loads it again,
// keeping nothing of the previous browsing state.
func (bs *BrowseScreen) Reload() {
	if bs.sourceURL == "" {
		return
	}
	bs.cache.Invalidate(bs.sourceURL)
	if bs.onRefresh != nil {
		bs.onRefresh(bs.sourceURL)
	}
	bs.load(bs.sourceURL)
}

// load starts the paginated load on its own goroutine
func (bs *BrowseScreen) load(sourceURL string) {
	bs.status = model.LoadStatusLoading
	bs.notifyStatus(bs.localization.GetText(KeyLoadingEntries), true)

	go func() {
		info, err := bs.loader.Load(context.Background(), sourceURL)
		if bs.destroyed.Load() {
			return
		}

		fyne.Do(func() {
			if err != nil {
				bs.status = model.LoadStatusError
				bs.loadErr = err
				log.Printf("Collection load failed: %v", err)
				bs.notifyStatus(fmt.Sprintf("%s: %v", bs.localization.GetText(KeyLoadFailed), err), false)
				bs.renderError()
				return
			}

			bs.collection = info
			bs.state = bs.newState()
			bs.status = model.LoadStatusLoaded
			bs.loadErr = nil
			bs.cache.SetCollection(sourceURL, info, bs.state)

			bs.restoreFromState()
			bs.notifyStatus("", false)
		})
	}()
}

// newState builds the initial browsing state for the loaded collection
func (bs *BrowseScreen) newState() *model.ViewState {
	total := 0
	if bs.collection != nil {
		total = len(bs.collection.Entries)
	}
	return model.NewViewState(total, bs.settings.GetViewMode())
}

// restoreFromState applies the browsing state to the widgets and renders
func (bs *BrowseScreen) restoreFromState() {
	bs.windower.SetViewMode(bs.state.ViewMode)
	bs.applyEstimatedHeight()
	bs.updateModeButton()

	if bs.searchEntry.Text != bs.state.SearchQuery {
		bs.searchEntry.SetText(bs.state.SearchQuery)
	}

	bs.rebuildFiltered()
	bs.windower.SetScrollTop(bs.state.ScrollTop)
	bs.renderWindow()

	// Scroll offset only sticks after the content has its size, so apply
	// it again on the next paint.
	target := fyne.NewPos(0, bs.state.ScrollTop)
	bs.scroll.Offset = target
	fyne.Do(func() {
		bs.scroll.Offset = target
		bs.scroll.Refresh()
	})
}

// applyEstimatedHeight keeps the windower's row estimate in sync with the
// active view mode.
func (bs *BrowseScreen) applyEstimatedHeight() {
	if bs.state.ViewMode == model.ViewModeGrid {
		bs.windower.SetEstimatedHeight(GridCellHeight)
		return
	}
	if fyne.CurrentDevice().IsMobile() {
		bs.windower.SetEstimatedHeight(MobileRowHeight)
		return
	}
	bs.windower.SetEstimatedHeight(EntryRowHeight)
}

// rebuildFiltered recomputes the visible entry slice from the search query
func (bs *BrowseScreen) rebuildFiltered() {
	if bs.collection == nil {
		bs.filtered = nil
		return
	}
	bs.filtered = bs.collection.FilterEntries(bs.state.SearchQuery)
	bs.updateCountLabel()
}

// filteredKeys returns the stable keys of the filtered entries in order
func (bs *BrowseScreen) filteredKeys() []string {
	keys := make([]string, len(bs.filtered))
	for i := range bs.filtered {
		keys[i] = bs.filtered[i].Key()
	}
	return keys
}

// renderWindow recomputes the window and rebuilds the visible widget range.
// Rows scrolled out of the window are dropped; rows still inside it are
// reused and refreshed in place.
func (bs *BrowseScreen) renderWindow() {
	if bs.status == model.LoadStatusError {
		bs.renderError()
		return
	}
	if bs.collection == nil {
		bs.listBox.Objects = []fyne.CanvasObject{widget.NewLabel(bs.localization.GetText(KeyNoEntries))}
		bs.listBox.Refresh()
		return
	}

	size := bs.scroll.Size()
	bs.windower.SetGeometry(size.Width, size.Height)

	keys := bs.filteredKeys()
	m := bs.windower.Compute(keys)

	if m.IsEmpty() {
		bs.listBox.Objects = []fyne.CanvasObject{widget.NewLabel(bs.localization.GetText(KeyNoEntries))}
		bs.listBox.Refresh()
		return
	}

	objects := make([]fyne.CanvasObject, 0, (m.EndIndex-m.StartIndex)/maxInt(m.Columns, 1)+2)
	objects = append(objects, bs.spacer(m.TopOffset))

	grid := bs.state.ViewMode == model.ViewModeGrid
	visible := make(map[string]bool, m.EndIndex-m.StartIndex)

	for rowStart := m.StartIndex; rowStart < m.EndIndex; rowStart += m.Columns {
		rowEnd := rowStart + m.Columns
		if rowEnd > m.EndIndex {
			rowEnd = m.EndIndex
		}

		cells := make([]fyne.CanvasObject, 0, m.Columns)
		for i := rowStart; i < rowEnd; i++ {
			entry := bs.filtered[i]
			visible[entry.ID] = true
			cells = append(cells, bs.entryWidget(entry, grid))
		}

		if grid {
			objects = append(objects, container.NewGridWithColumns(m.Columns, cells...))
		} else {
			objects = append(objects, cells...)
		}
	}

	objects = append(objects, bs.spacer(m.BottomOffset()))

	// Drop widgets that left the window so the pool stays window-sized
	for id := range bs.rendered {
		if !visible[id] {
			delete(bs.rendered, id)
		}
	}

	bs.listBox.Objects = objects
	bs.listBox.Refresh()
	bs.scheduleMeasure()
}

// scheduleMeasure queues one post-paint measurement pass for the rendered
// rows. A pending flag collapses bursts of render calls into a single pass.
func (bs *BrowseScreen) scheduleMeasure() {
	if bs.measurePending {
		return
	}
	bs.measurePending = true
	fyne.Do(func() {
		bs.measurePending = false
		if bs.destroyed.Load() {
			return
		}
		bs.measureRendered()
	})
}

// measureRendered feeds the painted heights of the materialized rows back
// into the windower and re-renders once when any cached height changed.
func (bs *BrowseScreen) measureRendered() {
	changed := false
	for id, row := range bs.rendered {
		if bs.windower.Measure(id, row.Size().Height) {
			changed = true
		}
	}
	if changed {
		bs.renderWindow()
	}
}

// onViewportResized recomputes the window for the new viewport geometry
func (bs *BrowseScreen) onViewportResized() {
	if bs.destroyed.Load() || bs.state == nil {
		return
	}
	bs.renderWindow()
}

// renderError shows the failed-load state with a retry action
func (bs *BrowseScreen) renderError() {
	text := fmt.Sprintf("%s %s", IconError, bs.localization.GetText(KeyLoadFailed))
	if bs.loadErr != nil {
		text = fmt.Sprintf("%s: %v", text, bs.loadErr)
	}
	message := widget.NewLabel(text)
	retry := widget.NewButton(bs.localization.GetText(KeyRetry), func() {
		bs.load(bs.sourceURL)
	})
	bs.listBox.Objects = []fyne.CanvasObject{message, retry}
	bs.listBox.Refresh()
}

// entryWidget returns a reusable row widget for the entry
func (bs *BrowseScreen) entryWidget(entry model.CollectionEntry, grid bool) fyne.CanvasObject {
	row, ok := bs.rendered[entry.ID]
	if !ok {
		row = NewEntryRow(entry, grid)
		row.SetOnToggle(bs.onToggleEntry)
		bs.rendered[entry.ID] = row
	}
	row.UpdateEntry(entry, bs.state.Selection.IsSelected(entry.ID))
	return row
}

// spacer returns a transparent rectangle of the given height
func (bs *BrowseScreen) spacer(height float32) fyne.CanvasObject {
	rect := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
	rect.SetMinSize(fyne.NewSize(1, height))
	return rect
}

// onScrolled handles scroll position changes. A busy flag drops reentrant
// notifications while a recompute is already scheduled.
func (bs *BrowseScreen) onScrolled(pos fyne.Position) {
	if bs.destroyed.Load() || bs.state == nil || bs.scrollBusy {
		return
	}
	bs.scrollBusy = true

	bs.state.ScrollTop = pos.Y
	bs.windower.SetScrollTop(pos.Y)

	fyne.Do(func() {
		defer func() { bs.scrollBusy = false }()
		if bs.destroyed.Load() {
			return
		}
		bs.renderWindow()
	})
}

// onSearchChanged debounces search input before filtering
func (bs *BrowseScreen) onSearchChanged(query string) {
	if bs.destroyed.Load() || bs.state == nil {
		return
	}

	bs.searchMu.Lock()
	defer bs.searchMu.Unlock()

	if bs.searchTimer != nil {
		bs.searchTimer.Stop()
	}
	bs.searchTimer = time.AfterFunc(SearchDebounce, func() {
		if bs.destroyed.Load() {
			return
		}
		fyne.Do(func() {
			bs.applySearch(query)
		})
	})
}

// applySearch commits a search query: the filtered view changes, so the
// scroll position resets to the top.
func (bs *BrowseScreen) applySearch(query string) {
	if bs.state == nil || bs.state.SearchQuery == query {
		return
	}

	bs.state.SearchQuery = query
	bs.state.ScrollTop = 0
	bs.windower.SetScrollTop(0)
	bs.rebuildFiltered()
	bs.renderWindow()
	bs.scroll.Offset = fyne.NewPos(0, 0)
	bs.scroll.Refresh()
	bs.flushState()
}

// onToggleEntry flips one entry's selection
func (bs *BrowseScreen) onToggleEntry(id string) {
	if bs.state == nil {
		return
	}
	bs.state.Selection.Toggle(id)
	bs.updateCountLabel()
	bs.flushState()
}

// onSelectAll selects every entry in the current filtered view
func (bs *BrowseScreen) onSelectAll() {
	if bs.state == nil || bs.collection == nil {
		return
	}
	bs.state.Selection.SelectAll(bs.filteredIDs())
	bs.refreshVisibleChecks()
	bs.updateCountLabel()
	bs.flushState()
}

// onDeselectAll deselects every entry in the current filtered view
func (bs *BrowseScreen) onDeselectAll() {
	if bs.state == nil || bs.collection == nil {
		return
	}
	bs.state.Selection.DeselectAll(bs.filteredIDs())
	bs.refreshVisibleChecks()
	bs.updateCountLabel()
	bs.flushState()
}

// filteredIDs returns the ids of the filtered entries
func (bs *BrowseScreen) filteredIDs() []string {
	ids := make([]string, len(bs.filtered))
	for i := range bs.filtered {
		ids[i] = bs.filtered[i].ID
	}
	return ids
}

// refreshVisibleChecks updates check state on materialized rows only
func (bs *BrowseScreen) refreshVisibleChecks() {
	for id, row := range bs.rendered {
		row.SetSelected(bs.state.Selection.IsSelected(id))
	}
}

// onToggleViewMode switches list/grid, keeping the topmost visible entry
// anchored across the geometry change.
func (bs *BrowseScreen) onToggleViewMode() {
	if bs.state == nil {
		return
	}

	keys := bs.filteredKeys()
	topIndex := bs.windower.TopIndex(keys)

	if bs.state.ViewMode == model.ViewModeGrid {
		bs.state.ViewMode = model.ViewModeList
	} else {
		bs.state.ViewMode = model.ViewModeGrid
	}
	bs.settings.SetViewMode(bs.state.ViewMode)
	bs.windower.SetViewMode(bs.state.ViewMode)
	bs.applyEstimatedHeight()
	bs.windower.ResetHeights()
	bs.updateModeButton()

	// Widgets carry their layout direction, so the pool cannot survive a
	// mode switch.
	bs.rendered = make(map[string]*EntryRow)

	newScroll := bs.windower.ScrollForIndex(keys, topIndex)
	bs.state.ScrollTop = newScroll
	bs.windower.SetScrollTop(newScroll)
	bs.renderWindow()

	// The offset needs a second application once the relaid-out content
	// has its real size.
	target := fyne.NewPos(0, newScroll)
	bs.scroll.Offset = target
	bs.scroll.Refresh()
	fyne.Do(func() {
		bs.scroll.Offset = target
		bs.scroll.Refresh()
	})
	bs.flushState()
}

// updateModeButton shows the mode the button switches TO
func (bs *BrowseScreen) updateModeButton() {
	if bs.state != nil && bs.state.ViewMode == model.ViewModeGrid {
		bs.modeBtn.SetText(IconListMode)
	} else {
		bs.modeBtn.SetText(IconGridMode)
	}
}

// updateCountLabel refreshes the "selected / total" label
func (bs *BrowseScreen) updateCountLabel() {
	if bs.state == nil || bs.collection == nil {
		bs.countLabel.SetText("")
		return
	}
	bs.countLabel.SetText(fmt.Sprintf(CountLabelFormat, bs.state.Selection.Count(), len(bs.collection.Entries)))
}

// DownloadSelected hands the current collection and state to the download
// callback.
func (bs *BrowseScreen) DownloadSelected() {
	if bs.collection == nil || bs.state == nil {
		return
	}
	if bs.state.Selection.Count() == 0 {
		bs.notifyStatus(bs.localization.GetText(KeyNothingSelected), false)
		return
	}
	if bs.onDownload != nil {
		bs.onDownload(bs.collection, bs.state)
	}
}

// RefreshTexts re-applies localized strings after a language change
func (bs *BrowseScreen) RefreshTexts() {
	bs.searchEntry.SetPlaceHolder(bs.localization.GetText(KeySearchEntries))
	bs.selectBtn.SetText(bs.localization.GetText(KeySelectAll))
	bs.deselectBtn.SetText(bs.localization.GetText(KeyDeselectAll))
}

// flushState persists the in-progress browsing state to the view cache
func (bs *BrowseScreen) flushState() {
	if bs.sourceURL == "" || bs.state == nil {
		return
	}
	bs.cache.SetUIState(bs.sourceURL, bs.state)
}

// Destroy tears the screen down: the in-flight load is abandoned and the
// final browsing state is flushed synchronously before the flag flips, so
// a re-mount never sees a half-written snapshot.
func (bs *BrowseScreen) Destroy() {
	bs.searchMu.Lock()
	if bs.searchTimer != nil {
		bs.searchTimer.Stop()
	}
	bs.searchMu.Unlock()

	bs.flushState()
	bs.destroyed.Store(true)
	bs.loader.Destroy()
}

// notifyStatus forwards a status message to the host
func (bs *BrowseScreen) notifyStatus(message string, busy bool) {
	if bs.onStatus != nil {
		bs.onStatus(message, busy)
	}
}

// resizeObserver wraps a canvas object and reports viewport size changes,
// so the visible window can be recomputed when the user resizes the app or
// rotates a mobile device.
type resizeObserver struct {
	widget.BaseWidget
	content  fyne.CanvasObject
	onResize func()
}

func newResizeObserver(content fyne.CanvasObject, onResize func()) *resizeObserver {
	o := &resizeObserver{content: content, onResize: onResize}
	o.ExtendBaseWidget(o)
	return o
}

// Resize forwards the new size and fires the callback when it changed
func (o *resizeObserver) Resize(size fyne.Size) {
	changed := size != o.Size()
	o.BaseWidget.Resize(size)
	if changed && o.onResize != nil {
		o.onResize()
	}
}

// CreateRenderer implements fyne.Widget
func (o *resizeObserver) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(o.content)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
