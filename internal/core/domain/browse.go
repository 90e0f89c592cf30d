package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Facet is a filterable category.
type Facet string

// Available facets.
const (
	FacetSegment     Facet = "segment"
	FacetTRL         Facet = "trl"
	FacetFunding     Facet = "funding"
	FacetRecognition Facet = "recognition"
)

// AllFacets returns the facets in display order.
func AllFacets() []Facet {
	return []Facet{FacetSegment, FacetTRL, FacetFunding, FacetRecognition}
}

// ParseFacet converts a facet name to a Facet.
func ParseFacet(s string) (Facet, error) {
	f := Facet(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FacetSegment, FacetTRL, FacetFunding, FacetRecognition:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFacet, s)
	}
}

// Label returns a human-readable facet name.
func (f Facet) Label() string {
	switch f {
	case FacetSegment:
		return "Segment"
	case FacetTRL:
		return "TRL"
	case FacetFunding:
		return "Funded"
	case FacetRecognition:
		return "Recognition"
	default:
		return string(f)
	}
}

// Recognition categories. A record is in exactly one of "Others" or at least
// one of the other two.
const (
	RecognitionAwards = "Award Winners"
	RecognitionMedia  = "Media recognized"
	RecognitionOthers = "Others"
)

// RecognitionCategories returns the recognition facet values in display order.
func RecognitionCategories() []string {
	return []string{RecognitionAwards, RecognitionMedia, RecognitionOthers}
}

// Funding status values.
const (
	FundedYes = "Yes"
	FundedNo  = "No"
)

// FilterState is the current search text and facet selection.
// Empty selections match everything.
type FilterState struct {
	Search      string   `json:"search,omitempty"`
	Segments    []string `json:"segments,omitempty"`
	TRLs        []string `json:"trls,omitempty"`
	Funding     []string `json:"funding,omitempty"`
	Recognition []string `json:"recognition,omitempty"`
}

// IsEmpty reports whether the filter matches every record.
func (f FilterState) IsEmpty() bool {
	return strings.TrimSpace(f.Search) == "" &&
		len(f.Segments) == 0 && len(f.TRLs) == 0 &&
		len(f.Funding) == 0 && len(f.Recognition) == 0
}

// Selected returns the selected values of a facet.
func (f FilterState) Selected(facet Facet) []string {
	switch facet {
	case FacetSegment:
		return f.Segments
	case FacetTRL:
		return f.TRLs
	case FacetFunding:
		return f.Funding
	case FacetRecognition:
		return f.Recognition
	default:
		return nil
	}
}

// IsSelected reports whether value is selected for facet.
func (f FilterState) IsSelected(facet Facet, value string) bool {
	return slices.Contains(f.Selected(facet), value)
}

// withSelected returns a copy with the facet selection replaced.
func (f FilterState) withSelected(facet Facet, values []string) FilterState {
	values = slices.Clone(values)
	switch facet {
	case FacetSegment:
		f.Segments = values
	case FacetTRL:
		f.TRLs = values
	case FacetFunding:
		f.Funding = values
	case FacetRecognition:
		f.Recognition = values
	}
	return f
}

// SortKey selects the ordering of a browse.
type SortKey string

// Available sort keys. Numeric and count keys sort biggest first;
// alphabetical sorts ascending and ignores case.
const (
	SortNone           SortKey = ""
	SortMostFunded     SortKey = "most-funded"
	SortLargestTeam    SortKey = "largest-team"
	SortHighestTRL     SortKey = "highest-trl"
	SortMostAwarded    SortKey = "most-awarded"
	SortMostRecognized SortKey = "most-recognized"
	SortAlphabetical   SortKey = "alphabetical"
)

// AllSortKeys returns every sort key, starting with SortNone.
func AllSortKeys() []SortKey {
	return []SortKey{
		SortNone, SortMostFunded, SortLargestTeam, SortHighestTRL,
		SortMostAwarded, SortMostRecognized, SortAlphabetical,
	}
}

// ParseSortKey converts a sort key name. "" and "none" mean no sort.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "none" {
		return SortNone, nil
	}
	key := SortKey(s)
	if !key.IsValid() {
		return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
	return key, nil
}

// IsValid returns true if the sort key is recognised.
func (k SortKey) IsValid() bool {
	return slices.Contains(AllSortKeys(), k)
}

// String returns the string representation.
func (k SortKey) String() string {
	if k == SortNone {
		return "none"
	}
	return string(k)
}

// Description returns a human-readable description of the sort key.
func (k SortKey) Description() string {
	switch k {
	case SortNone:
		return "Default order"
	case SortMostFunded:
		return "Most funded"
	case SortLargestTeam:
		return "Largest team"
	case SortHighestTRL:
		return "Highest TRL"
	case SortMostAwarded:
		return "Most awarded"
	case SortMostRecognized:
		return "Most recognized"
	case SortAlphabetical:
		return "Alphabetical"
	default:
		return "Unknown"
	}
}

// ViewMode is how the list of applications is laid out.
type ViewMode string

// Available view modes.
const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// ParseViewMode converts a view mode name.
func ParseViewMode(s string) (ViewMode, error) {
	m := ViewMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownViewMode, s)
	}
	return m, nil
}

// IsValid returns true if the view mode is recognised.
func (m ViewMode) IsValid() bool {
	return m == ViewModeGrid || m == ViewModeList
}

// Toggle returns the other view mode.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewModeList {
		return ViewModeGrid
	}
	return ViewModeList
}

// String returns the string representation.
func (m ViewMode) String() string {
	return string(m)
}

// FacetValue is one selectable value of a facet with its record count.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetOptions lists the selectable values for each facet.
type FacetOptions map[Facet][]FacetValue
