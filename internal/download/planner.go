package download

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-browser/internal/model"
)

// Request is one planned download, carrying everything the transfer
// pipeline needs without reaching back into browsing state.
type Request struct {
	TaskID    string
	VideoID   string
	URL       string
	Title     string
	Settings  model.ItemSettings
	OutputDir string
	CreatedAt time.Time
}

// Submitter accepts planned download requests. Implementations enqueue to
// whatever pipeline handles transfers.
type Submitter interface {
	Submit(ctx context.Context, requests []Request) error
}

// Planner builds download requests from a collection and its browsing
// state. Requests keep the collection's entry order regardless of the
// order selections were made in.
type Planner struct {
	defaults  model.DefaultsFunc
	outputDir string
}

// NewPlanner creates a planner resolving entry settings through defaults
func NewPlanner(defaults model.DefaultsFunc, outputDir string) *Planner {
	return &Planner{
		defaults:  defaults,
		outputDir: outputDir,
	}
}

// SetOutputDir updates the target directory for planned requests
func (p *Planner) SetOutputDir(dir string) {
	p.outputDir = dir
}

// Plan resolves the selection against the collection's entries and returns
// one request per selected entry, in collection order. Entries without a
// URL are skipped; an empty selection yields an error rather than a silent
// empty plan.
func (p *Planner) Plan(collection *model.CollectionInfo, state *model.ViewState) ([]Request, error) {
	if collection == nil || state == nil || state.Selection == nil {
		return nil, fmt.Errorf("nothing to plan: missing collection or selection")
	}

	selectedIDs := state.Selection.SelectedIDs(collection.EntryIDs())
	if len(selectedIDs) == 0 {
		return nil, fmt.Errorf("no entries selected")
	}

	now := time.Now()
	requests := make([]Request, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		entry := collection.FindEntry(id)
		if entry == nil {
			continue
		}
		if entry.URL == "" {
			log.Printf("Skipping entry without URL: %s", entry.GetDisplayTitle())
			continue
		}

		requests = append(requests, Request{
			TaskID:    uuid.NewString(),
			VideoID:   entry.ID,
			URL:       entry.URL,
			Title:     entry.GetDisplayTitle(),
			Settings:  state.EffectiveSettings(*entry, p.defaults),
			OutputDir: p.outputDir,
			CreatedAt: now,
		})
	}

	if len(requests) == 0 {
		return nil, fmt.Errorf("no downloadable entries in selection")
	}
	return requests, nil
}

// PlanAndSubmit plans the selection and hands the requests to the submitter
func (p *Planner) PlanAndSubmit(ctx context.Context, collection *model.CollectionInfo, state *model.ViewState, submitter Submitter) (int, error) {
	requests, err := p.Plan(collection, state)
	if err != nil {
		return 0, err
	}

	if err := submitter.Submit(ctx, requests); err != nil {
		return 0, fmt.Errorf("failed to submit %d downloads: %w", len(requests), err)
	}

	log.Printf("Submitted %d downloads from %q", len(requests), collection.Title)
	return len(requests), nil
}
