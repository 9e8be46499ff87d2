package model

import (
	"time"
)

// LoadStatus represents the lifecycle of a collection load for one screen
type LoadStatus string

const (
	// LoadStatusIdle means no load has been started yet
	LoadStatusIdle LoadStatus = "Idle"

	// LoadStatusLoading means a paginated load is in progress
	LoadStatusLoading LoadStatus = "Loading"

	// LoadStatusLoaded means the collection is fully loaded
	LoadStatusLoaded LoadStatus = "Loaded"

	// LoadStatusError means the load failed; terminal until an explicit retry
	LoadStatusError LoadStatus = "Error"
)

// String returns the string representation of LoadStatus
func (ls LoadStatus) String() string {
	return string(ls)
}

// IsTerminal returns true if no further pages will arrive in this state
func (ls LoadStatus) IsTerminal() bool {
	return ls == LoadStatusLoaded || ls == LoadStatusError
}

// CollectionInfo represents a fetched collection: an ordered sequence of
// entries plus collection-level metadata. Entries are unique by ID.
type CollectionInfo struct {
	IsPlaylist bool              `json:"is_playlist"`
	ID         string            `json:"id,omitempty"`
	SourceURL  string            `json:"source_url"`
	Title      string            `json:"title"`
	Uploader   string            `json:"uploader,omitempty"`
	Thumbnail  string            `json:"thumbnail,omitempty"`
	TotalCount int               `json:"total_count"`
	Entries    []CollectionEntry `json:"entries"`
	HasMore    bool              `json:"has_more"`
	LoadedAt   time.Time         `json:"loaded_at"`
}

// NewCollectionInfo creates an empty collection for the given source URL
func NewCollectionInfo(sourceURL string) *CollectionInfo {
	return &CollectionInfo{
		SourceURL: sourceURL,
		Entries:   make([]CollectionEntry, 0),
	}
}

// EntryIDs returns the ids of all entries in collection order.
func (c *CollectionInfo) EntryIDs() []string {
	ids := make([]string, 0, len(c.Entries))
	for i := range c.Entries {
		ids = append(ids, c.Entries[i].ID)
	}
	return ids
}

// FindEntry returns the entry with the given id, or nil if absent.
func (c *CollectionInfo) FindEntry(id string) *CollectionEntry {
	for i := range c.Entries {
		if c.Entries[i].ID == id {
			return &c.Entries[i]
		}
	}
	return nil
}

// FilterEntries returns the entries matching a search query, in collection
// order. An empty query returns all entries.
func (c *CollectionInfo) FilterEntries(query string) []CollectionEntry {
	if query == "" {
		return c.Entries
	}
	var out []CollectionEntry
	for i := range c.Entries {
		if c.Entries[i].MatchesQuery(query) {
			out = append(out, c.Entries[i])
		}
	}
	return out
}

// DedupEntries removes duplicate ids keeping the first occurrence and
// preserving insertion order. Remote sources may repeat entries across
// pages, so TotalCount is recomputed from the deduplicated length.
func (c *CollectionInfo) DedupEntries() {
	seen := make(map[string]struct{}, len(c.Entries))
	out := c.Entries[:0]
	for _, e := range c.Entries {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	c.Entries = out
	c.TotalCount = len(out)
}
