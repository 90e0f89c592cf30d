package domain

import (
	"slices"
	"strings"
)

// ViewState is the complete browse state of one reviewer session.
// Transitions return a new value and never mutate the receiver.
type ViewState struct {
	Filter FilterState `json:"filter"`
	Sort   SortKey     `json:"sort,omitempty"`
	Page   int         `json:"page"`
	Mode   ViewMode    `json:"mode"`
}

// NewViewState returns the initial state: no filters, no sort, page 1.
func NewViewState(mode ViewMode) ViewState {
	if !mode.IsValid() {
		mode = ViewModeGrid
	}
	return ViewState{Page: 1, Mode: mode}
}

// WithSearch sets the search text and returns to page 1.
func (s ViewState) WithSearch(text string) ViewState {
	s.Filter = s.Filter.clone()
	s.Filter.Search = text
	s.Page = 1
	return s
}

// ToggleFacet selects value if it is not selected and deselects it otherwise.
// Returns to page 1.
func (s ViewState) ToggleFacet(facet Facet, value string) ViewState {
	current := s.Filter.Selected(facet)
	var next []string
	if i := slices.Index(current, value); i >= 0 {
		next = slices.Delete(slices.Clone(current), i, i+1)
	} else {
		next = append(slices.Clone(current), value)
		slices.Sort(next)
	}
	s.Filter = s.Filter.withSelected(facet, next)
	s.Page = 1
	return s
}

// SetFacet replaces the selection of a facet. Returns to page 1.
func (s ViewState) SetFacet(facet Facet, values []string) ViewState {
	next := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(next, v) {
			next = append(next, v)
		}
	}
	slices.Sort(next)
	if len(next) == 0 {
		next = nil
	}
	s.Filter = s.Filter.withSelected(facet, next)
	s.Page = 1
	return s
}

// ClearFilters drops the search text and every facet selection.
// Sort and mode are kept. Returns to page 1.
func (s ViewState) ClearFilters() ViewState {
	s.Filter = FilterState{}
	s.Page = 1
	return s
}

// WithSort changes the sort key. Returns to page 1.
func (s ViewState) WithSort(key SortKey) ViewState {
	if !key.IsValid() {
		key = SortNone
	}
	s.Filter = s.Filter.clone()
	s.Sort = key
	s.Page = 1
	return s
}

// GoToPage moves to page p. Pages outside [1, totalPages] leave the state
// unchanged.
func (s ViewState) GoToPage(p, totalPages int) ViewState {
	if p < 1 || p > totalPages {
		return s
	}
	s.Filter = s.Filter.clone()
	s.Page = p
	return s
}

// WithMode changes the layout only.
func (s ViewState) WithMode(mode ViewMode) ViewState {
	if !mode.IsValid() {
		return s
	}
	s.Filter = s.Filter.clone()
	s.Mode = mode
	return s
}

// clone deep-copies the selection slices so transitions never alias.
func (f FilterState) clone() FilterState {
	f.Segments = slices.Clone(f.Segments)
	f.TRLs = slices.Clone(f.TRLs)
	f.Funding = slices.Clone(f.Funding)
	f.Recognition = slices.Clone(f.Recognition)
	return f
}

// Normalised returns the filter with search text trimmed and lower-cased so
// the pipeline lowers it once per run.
func (f FilterState) Normalised() FilterState {
	f = f.clone()
	f.Search = strings.ToLower(strings.TrimSpace(f.Search))
	return f
}
