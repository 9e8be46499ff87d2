package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-browser/internal/model"
)

// EntryRow is a compact row widget for one collection entry: selection
// check, title, uploader and duration, with flags rendered as icons. The
// same widget serves both list rows and grid cells; only the layout
// direction changes.
type EntryRow struct {
	widget.BaseWidget

	entry    model.CollectionEntry
	grid     bool
	updating bool

	// UI components
	check         *widget.Check
	titleLabel    *widget.Label
	uploaderLabel *widget.Label
	durationLabel *widget.Label
	flagsLabel    *widget.Label

	// Callbacks
	onToggle func(id string)
}

// NewEntryRow creates a new entry row widget
func NewEntryRow(entry model.CollectionEntry, grid bool) *EntryRow {
	er := &EntryRow{
		entry: entry,
		grid:  grid,
	}
	er.ExtendBaseWidget(er)
	er.createUI()
	er.updateFromEntry()
	return er
}

// SetOnToggle sets the selection toggle callback
func (er *EntryRow) SetOnToggle(onToggle func(id string)) {
	er.onToggle = onToggle
}

// UpdateEntry updates the row with new entry data and selection state
func (er *EntryRow) UpdateEntry(entry model.CollectionEntry, selected bool) {
	er.entry = entry
	er.updateFromEntry()
	er.SetSelected(selected)
	er.Refresh()
}

// SetSelected updates only the check state without firing the callback
func (er *EntryRow) SetSelected(selected bool) {
	if er.check.Checked == selected {
		return
	}
	er.updating = true
	er.check.SetChecked(selected)
	er.updating = false
}

// EntryID returns the id of the entry currently shown
func (er *EntryRow) EntryID() string {
	return er.entry.ID
}

// createUI creates the UI components
func (er *EntryRow) createUI() {
	er.check = widget.NewCheck("", func(bool) {
		if er.updating {
			return
		}
		if er.onToggle != nil {
			er.onToggle(er.entry.ID)
		}
	})

	er.titleLabel = widget.NewLabel("")
	er.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	er.titleLabel.Truncation = fyne.TextTruncateEllipsis
	er.titleLabel.Alignment = fyne.TextAlignLeading

	er.uploaderLabel = widget.NewLabel("")
	er.uploaderLabel.Truncation = fyne.TextTruncateEllipsis
	er.uploaderLabel.Alignment = fyne.TextAlignLeading

	er.durationLabel = widget.NewLabel("")
	er.durationLabel.Alignment = fyne.TextAlignTrailing
	er.durationLabel.TextStyle = fyne.TextStyle{Monospace: true}

	er.flagsLabel = widget.NewLabel("")
	er.flagsLabel.Alignment = fyne.TextAlignTrailing
}

// updateFromEntry updates UI components based on entry data
func (er *EntryRow) updateFromEntry() {
	title := strings.TrimSpace(strings.ReplaceAll(er.entry.GetDisplayTitle(), "\n", " "))
	er.titleLabel.SetText(title)

	uploader := er.entry.Uploader
	if uploader == "" {
		uploader = DashPlaceholder
	}
	er.uploaderLabel.SetText(uploader)

	er.durationLabel.SetText(er.entry.GetDurationString())

	flags := ""
	if er.entry.IsMusic {
		flags += IconMusic
	}
	if er.entry.IsLive {
		flags += IconLive
	}
	er.flagsLabel.SetText(flags)
}

// CreateRenderer creates the widget renderer
func (er *EntryRow) CreateRenderer() fyne.WidgetRenderer {
	return &entryRowRenderer{row: er}
}

// entryRowRenderer renders the entry row widget
type entryRowRenderer struct {
	row    *EntryRow
	layout *fyne.Container
}

// Layout arranges the components
func (r *entryRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *entryRowRenderer) MinSize() fyne.Size {
	if r.row.grid {
		return fyne.NewSize(GridMinColumnWidth, GridCellHeight)
	}
	return fyne.NewSize(EntryRowMinWidth, EntryRowHeight)
}

// Refresh refreshes the renderer
func (r *entryRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *entryRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *entryRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *entryRowRenderer) createLayout() {
	er := r.row

	// Fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	textBlock := container.NewVBox(er.titleLabel, er.uploaderLabel)

	if er.grid {
		// Grid cell: check and flags above, text stacked, duration below
		top := container.NewBorder(nil, nil, er.check, er.flagsLabel)
		bottom := container.NewBorder(nil, nil, nil, fixedWidth(DurationLabelWidth, er.durationLabel))
		r.layout = container.NewVBox(top, textBlock, bottom, widget.NewSeparator())
		return
	}

	// List row: check left, duration and flags pinned right, text expands
	rightSide := container.NewHBox(
		er.flagsLabel,
		fixedWidth(DurationLabelWidth, er.durationLabel),
	)
	mainContent := container.NewBorder(nil, nil, er.check, rightSide, textBlock)
	r.layout = container.NewVBox(mainContent, widget.NewSeparator())
}
