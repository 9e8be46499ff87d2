package model

import (
	"fmt"
	"strings"
)

// Duration thresholds for entry classification
const (
	// MusicDurationCutoffSec marks entries below this length as music when
	// the source host gives no better signal
	MusicDurationCutoffSec = 600.0

	// ShortDurationCutoffSec marks entries at or below this length as short-form
	ShortDurationCutoffSec = 61.0
)

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// CollectionEntry represents a single item of a playlist, channel feed or
// search result. Identity is by ID; positions shift as pages arrive or
// filters change.
type CollectionEntry struct {
	ID          string  `json:"id"`
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	DurationSec float64 `json:"duration,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Uploader    string  `json:"uploader,omitempty"`

	// Classification flags
	IsMusic bool `json:"is_music"`
	IsLive  bool `json:"is_live,omitempty"`
	IsShort bool `json:"is_short,omitempty"`
}

// Key returns the stable identifier used for selection and height caching.
func (e *CollectionEntry) Key() string {
	return e.ID
}

// GetDisplayTitle returns title or URL in order of preference.
func (e *CollectionEntry) GetDisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.URL
}

// GetDurationString returns the duration formatted as hh:mm:ss, or "—" if
// unknown or live.
func (e *CollectionEntry) GetDurationString() string {
	if e.IsLive || e.DurationSec <= 0 {
		return "—"
	}

	total := int(e.DurationSec)
	hours := total / SecondsPerHour
	minutes := (total % SecondsPerHour) / SecondsPerMinute
	seconds := total % SecondsPerMinute

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// MatchesQuery reports whether the entry matches a case-insensitive search
// query against title and uploader. An empty query matches everything.
func (e *CollectionEntry) MatchesQuery(query string) bool {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), query) {
		return true
	}
	return strings.Contains(strings.ToLower(e.Uploader), query)
}

// ClassifyMusic returns whether an entry should be flagged as music given
// its duration and whether the source host is a music service.
func ClassifyMusic(durationSec float64, musicHost bool) bool {
	if musicHost {
		return true
	}
	return durationSec > 0 && durationSec < MusicDurationCutoffSec
}

// ClassifyShort returns whether an entry counts as short-form content.
func ClassifyShort(durationSec float64) bool {
	return durationSec > 0 && durationSec <= ShortDurationCutoffSec
}
