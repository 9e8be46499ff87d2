// Package ui contains the Fyne-based user interface for browsing remote
// collections. It wires the URL entry, the windowed collection view with
// selection, search and view-mode switching, notifications, and settings.
// All UI strings are localized via Localization.
package ui
