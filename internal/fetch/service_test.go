package fetch

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// fakeDumper serves canned flat-listing output and counts invocations
type fakeDumper struct {
	output string
	err    error
	calls  int
}

func (f *fakeDumper) DumpFlatListing(ctx context.Context, url string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func listingOf(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf(`{"id":"v%03d","title":"Video %d","duration":300.0,"playlist_title":"Big Playlist","playlist_id":"PLbig"}`, i, i)
	}
	return strings.Join(lines, "\n")
}

func TestFetchPageSlicesListing(t *testing.T) {
	dumper := &fakeDumper{output: listingOf(240)}
	s := NewService(dumper)
	url := "https://www.youtube.com/playlist?list=PLbig"

	page, err := s.FetchPage(context.Background(), url, 0, 100)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(page.Entries) != 100 {
		t.Errorf("Expected 100 entries, got %d", len(page.Entries))
	}
	if page.TotalCount != 240 {
		t.Errorf("Expected TotalCount 240, got %d", page.TotalCount)
	}
	if !page.HasMore {
		t.Error("Expected HasMore on first page")
	}
	if page.Title != "Big Playlist" {
		t.Errorf("Expected collection metadata on page, got %q", page.Title)
	}

	last, err := s.FetchPage(context.Background(), url, 200, 100)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(last.Entries) != 40 {
		t.Errorf("Expected 40 entries on last page, got %d", len(last.Entries))
	}
	if last.HasMore {
		t.Error("Expected HasMore false on last page")
	}
	if last.Entries[0].ID != "v200" {
		t.Errorf("Expected last page to start at v200, got %s", last.Entries[0].ID)
	}
}

func TestFetchPageFetchesListingOnce(t *testing.T) {
	dumper := &fakeDumper{output: listingOf(240)}
	s := NewService(dumper)
	url := "https://www.youtube.com/playlist?list=PLbig"

	for offset := 0; offset < 240; offset += 100 {
		if _, err := s.FetchPage(context.Background(), url, offset, 100); err != nil {
			t.Fatalf("FetchPage at %d failed: %v", offset, err)
		}
	}

	if dumper.calls != 1 {
		t.Errorf("Expected one listing fetch for all pages, got %d", dumper.calls)
	}
}

func TestFetchPageBeyondEnd(t *testing.T) {
	dumper := &fakeDumper{output: listingOf(10)}
	s := NewService(dumper)

	page, err := s.FetchPage(context.Background(), "https://www.youtube.com/playlist?list=PLbig", 500, 100)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(page.Entries) != 0 {
		t.Errorf("Expected empty page beyond end, got %d entries", len(page.Entries))
	}
	if page.HasMore {
		t.Error("Expected HasMore false beyond end")
	}
}

func TestFetchPageInvalidBounds(t *testing.T) {
	s := NewService(&fakeDumper{output: listingOf(10)})
	url := "https://www.youtube.com/playlist?list=PLbig"

	if _, err := s.FetchPage(context.Background(), url, -1, 100); err == nil {
		t.Error("Expected error for negative offset")
	}
	if _, err := s.FetchPage(context.Background(), url, 0, 0); err == nil {
		t.Error("Expected error for zero limit")
	}
}

func TestFetchPagePropagatesDumpError(t *testing.T) {
	dumper := &fakeDumper{err: fmt.Errorf("yt-dlp exited with status 1")}
	s := NewService(dumper)

	if _, err := s.FetchPage(context.Background(), "https://www.youtube.com/playlist?list=PLbig", 0, 100); err == nil {
		t.Error("Expected dump error to propagate")
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	dumper := &fakeDumper{output: listingOf(10)}
	s := NewService(dumper)
	url := "https://www.youtube.com/playlist?list=PLbig"

	if _, err := s.FetchPage(context.Background(), url, 0, 100); err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	s.Invalidate(url)
	if _, err := s.FetchPage(context.Background(), url, 0, 100); err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}

	if dumper.calls != 2 {
		t.Errorf("Expected refetch after invalidation, got %d calls", dumper.calls)
	}
}

func TestFetchPageDeduplicatesListing(t *testing.T) {
	raw := strings.Join([]string{
		`{"id":"dup","title":"First","duration":100.0,"playlist_title":"P"}`,
		`{"id":"dup","title":"Second","duration":100.0,"playlist_title":"P"}`,
		`{"id":"other","title":"Other","duration":100.0,"playlist_title":"P"}`,
	}, "\n")
	s := NewService(&fakeDumper{output: raw})

	page, err := s.FetchPage(context.Background(), "https://www.youtube.com/playlist?list=PLdup", 0, 100)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("Expected duplicates removed from listing, got TotalCount %d", page.TotalCount)
	}
	if page.Entries[0].Title != "First" {
		t.Errorf("Expected first occurrence to win, got %q", page.Entries[0].Title)
	}
}
