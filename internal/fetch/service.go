package fetch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-browser/internal/model"
)

// Timeout constants
const (
	DefaultListingTimeout = 60 * time.Second
)

// Dumper produces raw yt-dlp flat-playlist output for a URL. Injecting it
// keeps the external-process concern out of this package and lets tests run
// against canned output.
type Dumper interface {
	DumpFlatListing(ctx context.Context, url string) (string, error)
}

// Service resolves collection URLs into offset/limit pages. The first page
// request for a URL fetches and parses the complete flat listing; that full
// collection is kept for the session so later pages are served as slices
// without touching the network again.
type Service struct {
	dumper  Dumper
	timeout time.Duration

	mu       sync.Mutex
	listings map[string]*model.CollectionInfo
}

// NewService creates a fetch service. A nil dumper falls back to the
// playlist library, which only understands playlist URLs.
func NewService(dumper Dumper) *Service {
	return &Service{
		dumper:   dumper,
		timeout:  DefaultListingTimeout,
		listings: make(map[string]*model.CollectionInfo),
	}
}

// SetTimeout sets the timeout for one full listing fetch
func (s *Service) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// FetchPage returns the page of entries at the given offset. TotalCount and
// HasMore describe the whole collection: HasMore is true exactly when
// entries beyond this page remain.
func (s *Service) FetchPage(ctx context.Context, sourceURL string, offset, limit int) (*model.CollectionInfo, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("invalid page bounds: offset=%d limit=%d", offset, limit)
	}

	full, err := s.fullListing(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	page := *full
	total := len(full.Entries)

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	page.Entries = append([]model.CollectionEntry(nil), full.Entries[start:end]...)
	page.TotalCount = total
	page.HasMore = offset+len(page.Entries) < total
	return &page, nil
}

// Invalidate drops the kept listing for a URL, forcing the next page
// request to refetch.
func (s *Service) Invalidate(sourceURL string) {
	s.mu.Lock()
	delete(s.listings, sourceURL)
	s.mu.Unlock()
}

// fullListing returns the complete collection for a URL, fetching and
// parsing it on first use.
func (s *Service) fullListing(ctx context.Context, sourceURL string) (*model.CollectionInfo, error) {
	s.mu.Lock()
	if full, ok := s.listings[sourceURL]; ok {
		s.mu.Unlock()
		return full, nil
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	full, err := s.fetchListing(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	full.DedupEntries()

	log.Printf("Fetched listing for %s: %d entries", sourceURL, len(full.Entries))

	s.mu.Lock()
	s.listings[sourceURL] = full
	s.mu.Unlock()
	return full, nil
}

// fetchListing obtains and parses the raw listing, via the dumper when one
// is configured.
func (s *Service) fetchListing(ctx context.Context, sourceURL string) (*model.CollectionInfo, error) {
	if s.dumper != nil {
		raw, err := s.dumper.DumpFlatListing(ctx, sourceURL)
		if err != nil {
			return nil, fmt.Errorf("failed to dump listing: %w", err)
		}
		return ParseFlatListing(raw, sourceURL)
	}

	return s.fetchViaLibrary(ctx, sourceURL)
}

// fetchViaLibrary resolves a playlist URL through the playlist items API.
// Flat items carry no duration or thumbnail, so entries come back with
// unknown duration and host-based music classification only.
func (s *Service) fetchViaLibrary(ctx context.Context, sourceURL string) (*model.CollectionInfo, error) {
	playlistID, err := ExtractPlaylistID(sourceURL)
	if err != nil {
		return nil, err
	}

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	music := IsMusicURL(sourceURL)

	info := model.NewCollectionInfo(sourceURL)
	info.IsPlaylist = true
	info.ID = playlistID
	info.Title = fmt.Sprintf("%s %s", DefaultCollectionTitle, playlistID)
	info.Entries = make([]model.CollectionEntry, 0, len(items))
	for _, it := range items {
		info.Entries = append(info.Entries, model.CollectionEntry{
			ID:          it.VideoID,
			URL:         WatchURL(it.VideoID, music),
			Title:       it.Title,
			DurationSec: -1,
			IsMusic:     model.ClassifyMusic(-1, music),
		})
	}
	info.TotalCount = len(info.Entries)
	info.LoadedAt = time.Now()
	return info, nil
}
