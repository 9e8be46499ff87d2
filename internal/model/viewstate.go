package model

// ViewMode represents how a collection is displayed
type ViewMode string

const (
	// ViewModeList shows one entry per row with fixed row heights
	ViewModeList ViewMode = "list"

	// ViewModeGrid shows entries as thumbnail cells, several per row
	ViewModeGrid ViewMode = "grid"
)

// String returns the string representation of ViewMode
func (vm ViewMode) String() string {
	return string(vm)
}

// ItemSettings are the effective per-entry download settings.
type ItemSettings struct {
	AudioOnly bool   `json:"audio_only"`
	Quality   string `json:"quality,omitempty"`
}

// ItemOverride is a sparse partial override of ItemSettings. Nil fields
// fall back to the consumer-supplied defaults, so the override map stays
// small even for very large collections.
type ItemOverride struct {
	AudioOnly *bool   `json:"audio_only,omitempty"`
	Quality   *string `json:"quality,omitempty"`
}

// IsEmpty reports whether the override carries no information.
func (o ItemOverride) IsEmpty() bool {
	return o.AudioOnly == nil && o.Quality == nil
}

// DefaultsFunc maps an entry to its default download settings, e.g.
// audio-only for music-flagged entries. Supplied by the consumer; the view
// state stores only overrides relative to it.
type DefaultsFunc func(CollectionEntry) ItemSettings

// ViewState is the in-progress browsing state of one collection screen.
// It is the source of truth restored verbatim on re-mount, owned by the
// view cache between mounts.
type ViewState struct {
	ScrollTop   float32
	ViewMode    ViewMode
	SearchQuery string
	Selection   *Selection
	Overrides   map[string]ItemOverride
}

// NewViewState creates the initial state for a freshly loaded collection.
func NewViewState(totalEntries int, mode ViewMode) *ViewState {
	return &ViewState{
		ViewMode:  mode,
		Selection: NewSelection(totalEntries),
		Overrides: make(map[string]ItemOverride),
	}
}

// SetOverride stores a per-entry override, dropping it entirely when the
// override is empty to keep the map sparse.
func (vs *ViewState) SetOverride(id string, override ItemOverride) {
	if vs.Overrides == nil {
		vs.Overrides = make(map[string]ItemOverride)
	}
	if override.IsEmpty() {
		delete(vs.Overrides, id)
		return
	}
	vs.Overrides[id] = override
}

// Override returns the stored override for an id, if any.
func (vs *ViewState) Override(id string) (ItemOverride, bool) {
	o, ok := vs.Overrides[id]
	return o, ok
}

// EffectiveSettings resolves an entry's settings: consumer defaults with
// any sparse override applied on top.
func (vs *ViewState) EffectiveSettings(entry CollectionEntry, defaults DefaultsFunc) ItemSettings {
	settings := ItemSettings{}
	if defaults != nil {
		settings = defaults(entry)
	}
	if o, ok := vs.Overrides[entry.ID]; ok {
		if o.AudioOnly != nil {
			settings.AudioOnly = *o.AudioOnly
		}
		if o.Quality != nil {
			settings.Quality = *o.Quality
		}
	}
	return settings
}
