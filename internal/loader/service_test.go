package loader

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ytget/yt-browser/internal/model"
)

// fakeFetcher serves pre-built pages keyed by offset and records the order
// offsets were requested in.
type fakeFetcher struct {
	pages   map[int]*model.CollectionInfo
	errAt   int
	err     error
	offsets []int
	onFetch func(offset int)
}

func (f *fakeFetcher) FetchPage(ctx context.Context, sourceURL string, offset, limit int) (*model.CollectionInfo, error) {
	f.offsets = append(f.offsets, offset)
	if f.onFetch != nil {
		f.onFetch(offset)
	}
	if f.err != nil && offset == f.errAt {
		return nil, f.err
	}
	page, ok := f.pages[offset]
	if !ok {
		return nil, fmt.Errorf("no page at offset %d", offset)
	}
	return page, nil
}

func entries(ids ...string) []model.CollectionEntry {
	result := make([]model.CollectionEntry, len(ids))
	for i, id := range ids {
		result[i] = model.CollectionEntry{ID: id, Title: "Video " + id}
	}
	return result
}

func page(total int, hasMore bool, ids ...string) *model.CollectionInfo {
	return &model.CollectionInfo{
		IsPlaylist: true,
		Title:      "Test Playlist",
		TotalCount: total,
		HasMore:    hasMore,
		Entries:    entries(ids...),
	}
}

func TestLoadSinglePage(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*model.CollectionInfo{
		0: page(3, false, "a", "b", "c"),
	}}
	s := NewService(fetcher, 100)

	info, err := s.Load(context.Background(), "https://example.com/playlist")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(info.Entries) != 3 {
		t.Errorf("Expected 3 entries, got %d", len(info.Entries))
	}
	if info.TotalCount != 3 {
		t.Errorf("Expected TotalCount 3, got %d", info.TotalCount)
	}
	if info.HasMore {
		t.Error("Expected HasMore false after complete load")
	}
}

func TestLoadMergesPagesInOrder(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*model.CollectionInfo{
		0:   page(240, true, makeIDs(0, 100)...),
		100: page(240, true, makeIDs(100, 200)...),
		200: page(240, false, makeIDs(200, 240)...),
	}}
	s := NewService(fetcher, 100)

	var progress [][2]int
	s.SetProgressCallback(func(loaded, total int) {
		progress = append(progress, [2]int{loaded, total})
	})

	info, err := s.Load(context.Background(), "https://example.com/playlist")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(info.Entries) != 240 {
		t.Errorf("Expected 240 entries, got %d", len(info.Entries))
	}
	for i, entry := range info.Entries {
		if entry.ID != fmt.Sprintf("v%03d", i) {
			t.Fatalf("Entry %d out of order: got %s", i, entry.ID)
		}
	}

	expectedOffsets := []int{0, 100, 200}
	if len(fetcher.offsets) != len(expectedOffsets) {
		t.Fatalf("Expected %d fetches, got %d", len(expectedOffsets), len(fetcher.offsets))
	}
	for i, offset := range expectedOffsets {
		if fetcher.offsets[i] != offset {
			t.Errorf("Fetch %d: expected offset %d, got %d", i, offset, fetcher.offsets[i])
		}
	}

	if len(progress) != 3 {
		t.Fatalf("Expected 3 progress reports, got %d", len(progress))
	}
	if progress[0] != [2]int{100, 240} || progress[2] != [2]int{240, 240} {
		t.Errorf("Unexpected progress sequence: %v", progress)
	}
}

func TestLoadDeduplicatesAcrossPages(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*model.CollectionInfo{
		0: page(4, true, "a", "b"),
		2: page(4, false, "b", "c"),
	}}
	s := NewService(fetcher, 2)

	info, err := s.Load(context.Background(), "https://example.com/playlist")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ids := info.EntryIDs()
	expected := []string{"a", "b", "c"}
	if len(ids) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, ids)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expected[i], ids[i])
		}
	}
	if info.TotalCount != 3 {
		t.Errorf("Expected recomputed TotalCount 3, got %d", info.TotalCount)
	}
}

func TestLoadErrorAbortsWhole(t *testing.T) {
	fetchErr := errors.New("network unreachable")
	fetcher := &fakeFetcher{
		pages: map[int]*model.CollectionInfo{
			0: page(200, true, makeIDs(0, 100)...),
		},
		errAt: 100,
		err:   fetchErr,
	}
	s := NewService(fetcher, 100)

	info, err := s.Load(context.Background(), "https://example.com/playlist")
	if err == nil {
		t.Fatal("Expected error when a later page fails")
	}
	if !errors.Is(err, fetchErr) {
		t.Errorf("Expected wrapped fetch error, got %v", err)
	}
	if info != nil {
		t.Error("Expected no partial result on error")
	}
}

func TestLoadStopsAfterDestroy(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*model.CollectionInfo{
		0:   page(300, true, makeIDs(0, 100)...),
		100: page(300, true, makeIDs(100, 200)...),
		200: page(300, false, makeIDs(200, 300)...),
	}}
	s := NewService(fetcher, 100)

	// Tear down while the first page is in flight
	fetcher.onFetch = func(offset int) {
		if offset == 0 {
			s.Destroy()
		}
	}

	info, err := s.Load(context.Background(), "https://example.com/playlist")
	if !errors.Is(err, ErrDestroyed) {
		t.Fatalf("Expected ErrDestroyed, got %v", err)
	}
	if info != nil {
		t.Error("Expected no result after destroy")
	}
	if len(fetcher.offsets) != 1 {
		t.Errorf("Expected pagination to stop after destroy, got %d fetches", len(fetcher.offsets))
	}
}

func TestLoadAfterDestroyFailsFast(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*model.CollectionInfo{}}
	s := NewService(fetcher, 100)
	s.Destroy()

	if _, err := s.Load(context.Background(), "https://example.com/playlist"); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("Expected ErrDestroyed, got %v", err)
	}
	if len(fetcher.offsets) != 0 {
		t.Error("Expected no fetches after destroy")
	}
}

func TestLoadHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &fakeFetcher{pages: map[int]*model.CollectionInfo{
		0: page(300, true, makeIDs(0, 100)...),
	}}
	fetcher.onFetch = func(offset int) { cancel() }
	s := NewService(fetcher, 100)

	_, err := s.Load(ctx, "https://example.com/playlist")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestLoadStopsOnEmptyPageClaimingMore(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*model.CollectionInfo{
		0:   page(500, true, makeIDs(0, 100)...),
		100: page(500, true),
	}}
	s := NewService(fetcher, 100)

	info, err := s.Load(context.Background(), "https://example.com/playlist")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(info.Entries) != 100 {
		t.Errorf("Expected 100 entries, got %d", len(info.Entries))
	}
	if len(fetcher.offsets) != 2 {
		t.Errorf("Expected pagination to stop after empty page, got %d fetches", len(fetcher.offsets))
	}
}

func TestLoadDeduplicatesWithinFirstPage(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]*model.CollectionInfo{
		0: page(3, false, "a", "a", "b"),
	}}
	s := NewService(fetcher, 100)

	info, err := s.Load(context.Background(), "https://example.com/playlist")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ids := info.EntryIDs()
	expected := []string{"a", "b"}
	if len(ids) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, ids)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expected[i], ids[i])
		}
	}
	if info.TotalCount != 2 {
		t.Errorf("Expected recomputed TotalCount 2, got %d", info.TotalCount)
	}
}

func TestLoadOffsetsFollowFetchedCount(t *testing.T) {
	// Short non-final pages: each delivers one entry despite the larger
	// page size, so offsets must advance by what was actually fetched
	fetcher := &fakeFetcher{pages: map[int]*model.CollectionInfo{
		0: page(3, true, "a"),
		1: page(3, true, "b"),
		2: page(3, false, "c"),
	}}
	s := NewService(fetcher, 100)

	info, err := s.Load(context.Background(), "https://example.com/playlist")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expectedOffsets := []int{0, 1, 2}
	if len(fetcher.offsets) != len(expectedOffsets) {
		t.Fatalf("Expected offsets %v, got %v", expectedOffsets, fetcher.offsets)
	}
	for i, offset := range expectedOffsets {
		if fetcher.offsets[i] != offset {
			t.Errorf("Fetch %d: expected offset %d, got %d", i, offset, fetcher.offsets[i])
		}
	}
	if len(info.Entries) != 3 {
		t.Errorf("Expected 3 entries, got %d", len(info.Entries))
	}
}

func makeIDs(from, to int) []string {
	ids := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		ids = append(ids, fmt.Sprintf("v%03d", i))
	}
	return ids
}
