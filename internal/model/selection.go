package model

// SelectionMode represents how the selection set is encoded
type SelectionMode string

const (
	// SelectionModeAll means every entry is selected except the ones in the
	// deselected set
	SelectionModeAll SelectionMode = "all"

	// SelectionModeSome means only the entries in the selected set are
	// selected
	SelectionModeSome SelectionMode = "some"
)

// Selection tracks which entries of a collection are chosen for download.
// It supports very large collections by encoding "everything except a few
// exclusions" with a mode flag plus one exception set, so "select all,
// then exclude 3" costs memory proportional to the exclusions and not to
// the collection size.
type Selection struct {
	mode       SelectionMode
	total      int
	deselected map[string]struct{} // meaningful when mode == all
	selected   map[string]struct{} // meaningful when mode == some
}

// NewSelection creates a selection over a collection of the given size.
// The default on a fresh load is "everything selected".
func NewSelection(totalEntries int) *Selection {
	if totalEntries < 0 {
		totalEntries = 0
	}
	return &Selection{
		mode:       SelectionModeAll,
		total:      totalEntries,
		deselected: make(map[string]struct{}),
		selected:   make(map[string]struct{}),
	}
}

// Mode returns the current encoding mode.
func (s *Selection) Mode() SelectionMode {
	return s.mode
}

// TotalEntries returns the collection size the selection is defined over.
func (s *Selection) TotalEntries() int {
	return s.total
}

// SetTotalEntries updates the collection size, e.g. after a reload changed
// the entry count. Exception sets are kept as recorded; a caller replacing
// the entry universe should start from a fresh Selection instead.
func (s *Selection) SetTotalEntries(total int) {
	if total < 0 {
		total = 0
	}
	s.total = total
}

// IsSelected reports whether the entry with the given id is selected.
func (s *Selection) IsSelected(id string) bool {
	if s.mode == SelectionModeAll {
		_, excluded := s.deselected[id]
		return !excluded
	}
	_, included := s.selected[id]
	return included
}

// Toggle flips the selection state of a single id.
func (s *Selection) Toggle(id string) {
	if s.mode == SelectionModeAll {
		if _, excluded := s.deselected[id]; excluded {
			delete(s.deselected, id)
		} else {
			s.deselected[id] = struct{}{}
		}
		return
	}
	if _, included := s.selected[id]; included {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
}

// SelectAll selects every candidate id. When the candidate set covers the
// entire collection the selection is re-expressed as mode "all" with no
// exclusions; otherwise the representation stays exact for "select all of
// this filtered subset".
func (s *Selection) SelectAll(candidateIDs []string) {
	if len(candidateIDs) >= s.total {
		s.mode = SelectionModeAll
		s.deselected = make(map[string]struct{})
		s.selected = make(map[string]struct{})
		return
	}

	if s.mode == SelectionModeAll {
		for _, id := range candidateIDs {
			delete(s.deselected, id)
		}
		return
	}
	for _, id := range candidateIDs {
		s.selected[id] = struct{}{}
	}
}

// DeselectAll deselects every candidate id. Deselecting the entire
// collection collapses to mode "some" with an empty set.
func (s *Selection) DeselectAll(candidateIDs []string) {
	if len(candidateIDs) >= s.total {
		s.mode = SelectionModeSome
		s.deselected = make(map[string]struct{})
		s.selected = make(map[string]struct{})
		return
	}

	if s.mode == SelectionModeAll {
		for _, id := range candidateIDs {
			s.deselected[id] = struct{}{}
		}
		return
	}
	for _, id := range candidateIDs {
		delete(s.selected, id)
	}
}

// Count returns the number of selected entries. It is always within
// [0, TotalEntries].
func (s *Selection) Count() int {
	var n int
	if s.mode == SelectionModeAll {
		n = s.total - len(s.deselected)
	} else {
		n = len(s.selected)
	}
	if n < 0 {
		n = 0
	}
	if n > s.total {
		n = s.total
	}
	return n
}

// ExclusionCount returns the size of whichever exception set is active.
func (s *Selection) ExclusionCount() int {
	if s.mode == SelectionModeAll {
		return len(s.deselected)
	}
	return len(s.selected)
}

// SelectedIDs returns the selected subset of the given candidate ids,
// preserving candidate order. Callers pass collection order to obtain a
// deterministic download plan.
func (s *Selection) SelectedIDs(candidateIDs []string) []string {
	out := make([]string, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if s.IsSelected(id) {
			out = append(out, id)
		}
	}
	return out
}
