package model

import (
	"testing"
)

func TestDedupEntriesFirstOccurrenceWins(t *testing.T) {
	c := NewCollectionInfo("https://example.com/playlist?list=PL1")
	c.Entries = []CollectionEntry{
		{ID: "A", Title: "first A"},
		{ID: "B", Title: "first B"},
		{ID: "B", Title: "second B"},
		{ID: "C", Title: "first C"},
	}
	c.TotalCount = 4

	c.DedupEntries()

	if len(c.Entries) != 3 {
		t.Fatalf("Expected 3 entries after dedup, got %d", len(c.Entries))
	}
	if c.TotalCount != 3 {
		t.Errorf("Expected TotalCount recomputed to 3, got %d", c.TotalCount)
	}

	expected := []string{"A", "B", "C"}
	for i, id := range expected {
		if c.Entries[i].ID != id {
			t.Errorf("Index %d: expected id %s, got %s", i, id, c.Entries[i].ID)
		}
	}
	if c.Entries[1].Title != "first B" {
		t.Errorf("Expected first occurrence of B to win, got title %q", c.Entries[1].Title)
	}
}

func TestFilterEntries(t *testing.T) {
	c := NewCollectionInfo("https://example.com")
	c.Entries = []CollectionEntry{
		{ID: "1", Title: "Go Concurrency Patterns", Uploader: "GopherCon"},
		{ID: "2", Title: "Rust Ownership", Uploader: "RustConf"},
		{ID: "3", Title: "Advanced go generics", Uploader: "Someone"},
	}

	got := c.FilterEntries("go")
	if len(got) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("Expected ids 1 and 3, got %s and %s", got[0].ID, got[1].ID)
	}

	// Uploader matches too
	got = c.FilterEntries("rustconf")
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("Expected uploader match for id 2, got %v", got)
	}

	// Empty query returns everything
	if len(c.FilterEntries("")) != 3 {
		t.Error("Expected empty query to return all entries")
	}
}

func TestFindEntry(t *testing.T) {
	c := NewCollectionInfo("https://example.com")
	c.Entries = []CollectionEntry{{ID: "x", Title: "X"}}

	if e := c.FindEntry("x"); e == nil || e.Title != "X" {
		t.Error("Expected to find entry x")
	}
	if e := c.FindEntry("missing"); e != nil {
		t.Error("Expected nil for missing id")
	}
}

func TestGetDurationString(t *testing.T) {
	tests := []struct {
		name     string
		entry    CollectionEntry
		expected string
	}{
		{"unknown", CollectionEntry{}, "—"},
		{"live", CollectionEntry{DurationSec: 3600, IsLive: true}, "—"},
		{"minutes", CollectionEntry{DurationSec: 245}, "04:05"},
		{"hours", CollectionEntry{DurationSec: 3725}, "01:02:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.GetDurationString(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestClassifyMusic(t *testing.T) {
	if !ClassifyMusic(120, false) {
		t.Error("Expected short track to classify as music")
	}
	if ClassifyMusic(MusicDurationCutoffSec, false) {
		t.Error("Expected track at cutoff to not classify as music")
	}
	if !ClassifyMusic(7200, true) {
		t.Error("Expected music host to force classification regardless of duration")
	}
	if ClassifyMusic(0, false) {
		t.Error("Expected unknown duration to not classify as music")
	}
}

func TestLoadStatusIsTerminal(t *testing.T) {
	if LoadStatusLoading.IsTerminal() {
		t.Error("Loading should not be terminal")
	}
	if !LoadStatusLoaded.IsTerminal() {
		t.Error("Loaded should be terminal")
	}
	if !LoadStatusError.IsTerminal() {
		t.Error("Error should be terminal")
	}
}

func TestEffectiveSettingsOverrides(t *testing.T) {
	vs := NewViewState(3, ViewModeList)

	defaults := func(e CollectionEntry) ItemSettings {
		return ItemSettings{AudioOnly: e.IsMusic, Quality: "best"}
	}

	music := CollectionEntry{ID: "m", IsMusic: true}
	video := CollectionEntry{ID: "v"}

	if got := vs.EffectiveSettings(music, defaults); !got.AudioOnly {
		t.Error("Expected music entry to default to audio-only")
	}
	if got := vs.EffectiveSettings(video, defaults); got.AudioOnly {
		t.Error("Expected non-music entry to default to full download")
	}

	// Override audio-only off for the music entry
	off := false
	vs.SetOverride("m", ItemOverride{AudioOnly: &off})
	if got := vs.EffectiveSettings(music, defaults); got.AudioOnly {
		t.Error("Expected override to disable audio-only")
	}
	if got := vs.EffectiveSettings(music, defaults); got.Quality != "best" {
		t.Errorf("Expected untouched quality 'best', got %q", got.Quality)
	}
}

func TestSetOverrideKeepsMapSparse(t *testing.T) {
	vs := NewViewState(100, ViewModeGrid)

	q := "720p"
	vs.SetOverride("a", ItemOverride{Quality: &q})
	if len(vs.Overrides) != 1 {
		t.Fatalf("Expected 1 override, got %d", len(vs.Overrides))
	}

	// Storing an empty override removes the id entirely
	vs.SetOverride("a", ItemOverride{})
	if len(vs.Overrides) != 0 {
		t.Errorf("Expected empty override to be dropped, map has %d entries", len(vs.Overrides))
	}
}
