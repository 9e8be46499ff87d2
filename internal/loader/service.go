package loader

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/ytget/yt-browser/internal/model"
)

// Pagination constants
const (
	// DefaultPageSize is how many entries one page request asks for
	DefaultPageSize = 100

	// MaxPages bounds runaway pagination against a fetcher that keeps
	// reporting more pages than the collection can hold
	MaxPages = 10000
)

// ErrDestroyed is returned when a load is abandoned because the owning
// screen was torn down mid-flight.
var ErrDestroyed = fmt.Errorf("loader destroyed")

// Service loads a complete collection page by page through a PageFetcher.
// It is bound to one owner lifecycle: once Destroy is called the in-flight
// load stops at the next page boundary and its result is discarded.
type Service struct {
	fetcher    PageFetcher
	pageSize   int
	destroyed  atomic.Bool
	onProgress ProgressFunc
}

// NewService creates a loader over the given fetcher
func NewService(fetcher PageFetcher, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		fetcher:  fetcher,
		pageSize: pageSize,
	}
}

// SetProgressCallback sets the callback invoked after each merged page
func (s *Service) SetProgressCallback(callback ProgressFunc) {
	s.onProgress = callback
}

// Destroy marks the loader dead. Any in-flight load notices the flag after
// its current page completes and returns ErrDestroyed without delivering a
// result.
func (s *Service) Destroy() {
	s.destroyed.Store(true)
}

// IsDestroyed reports whether Destroy has been called
func (s *Service) IsDestroyed() bool {
	return s.destroyed.Load()
}

// Load fetches every page of the collection at sourceURL in strict offset
// order and returns the merged result. Duplicate entry IDs across pages are
// dropped, keeping the first occurrence, and TotalCount is recomputed from
// what was actually merged. Any page error aborts the whole load.
func (s *Service) Load(ctx context.Context, sourceURL string) (*model.CollectionInfo, error) {
	if s.destroyed.Load() {
		return nil, ErrDestroyed
	}

	log.Printf("Loading collection: %s", sourceURL)

	first, err := s.fetcher.FetchPage(ctx, sourceURL, 0, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first page: %w", err)
	}
	if s.destroyed.Load() {
		return nil, ErrDestroyed
	}

	result := *first
	result.Entries = make([]model.CollectionEntry, 0, len(first.Entries))
	seen := make(map[string]bool, len(first.Entries))
	for _, entry := range first.Entries {
		if seen[entry.ID] {
			continue
		}
		seen[entry.ID] = true
		result.Entries = append(result.Entries, entry)
	}

	// The next offset counts raw fetched entries, not merged ones, so a
	// short or duplicate-bearing page never skips remote positions.
	fetched := len(first.Entries)

	s.notifyProgress(len(result.Entries), result.TotalCount)

	hasMore := first.HasMore
	for page := 1; hasMore && page < MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		offset := fetched
		next, err := s.fetcher.FetchPage(ctx, sourceURL, offset, s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page at offset %d: %w", offset, err)
		}
		if s.destroyed.Load() {
			return nil, ErrDestroyed
		}

		fetched += len(next.Entries)
		for _, entry := range next.Entries {
			if seen[entry.ID] {
				continue
			}
			seen[entry.ID] = true
			result.Entries = append(result.Entries, entry)
		}
		if next.TotalCount > result.TotalCount {
			result.TotalCount = next.TotalCount
		}

		s.notifyProgress(len(result.Entries), result.TotalCount)

		hasMore = next.HasMore
		// A page that advances nothing while claiming more would spin
		// forever; treat it as the end.
		if len(next.Entries) == 0 && hasMore {
			log.Printf("Empty page at offset %d with has_more set, stopping", offset)
			break
		}
	}

	result.TotalCount = len(result.Entries)
	result.HasMore = false

	log.Printf("Loaded collection %q: %d entries", result.Title, len(result.Entries))
	return &result, nil
}

// notifyProgress invokes the progress callback if set
func (s *Service) notifyProgress(loaded, total int) {
	if s.onProgress != nil && !s.destroyed.Load() {
		s.onProgress(loaded, total)
	}
}
