package loader

import (
	"context"

	"github.com/ytget/yt-browser/internal/model"
)

// PageFetcher retrieves one page of a remote collection. Implementations
// are expected to be safe for sequential reuse with increasing offsets for
// the same source URL.
type PageFetcher interface {
	// FetchPage returns the page of entries at the given offset. The
	// returned CollectionInfo carries collection-level metadata alongside
	// the page slice; TotalCount and HasMore describe the whole collection
	// as known after this page.
	FetchPage(ctx context.Context, sourceURL string, offset, limit int) (*model.CollectionInfo, error)
}

// ProgressFunc is called between pages with the number of entries merged so
// far and the last reported total. It runs on the loader goroutine.
type ProgressFunc func(loaded, total int)
