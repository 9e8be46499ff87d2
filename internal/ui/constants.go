package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconError    = "❌"
	IconMusic    = "🎵"
	IconLive     = "🔴"
	IconRefresh  = "⟳"
	IconListMode = "☰"
	IconGridMode = "▦"
)

// Text fragments
const (
	DashPlaceholder  = "—"
	CountLabelFormat = "%d / %d"
)

// Layout sizing (entry rows / grid cells)
const (
	EntryRowHeight     float32 = 72
	EntryRowMinWidth   float32 = 400
	GridCellHeight     float32 = 200
	GridMinColumnWidth float32 = 220

	DurationLabelWidth float32 = 84

	// Mobile-specific sizing
	MobileRowHeight    float32 = 88
	MinTouchTargetSize float32 = 44
)

// Windowed rendering
const (
	RowOverscan       = 4
	MobileRowOverscan = 2
)

// Debounce durations
const (
	SearchDebounce = 150 * time.Millisecond
)
