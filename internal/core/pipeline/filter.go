package pipeline

import (
	"cmp"
	"slices"
	"strings"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// searchFields are the fields free-text search looks at.
var searchFields = []domain.Field{
	domain.FieldApplicationID,
	domain.FieldApplicantName,
	domain.FieldCompanyName,
	domain.FieldInnovationTitle,
}

// Matches reports whether a record passes the filter: the AND of search,
// segment, TRL, funding and recognition.
func Matches(r domain.Record, f domain.FilterState) bool {
	return matches(r, f.Normalised())
}

// Filter returns the records passing f in collection order.
func Filter(records []domain.Record, f domain.FilterState) []domain.Record {
	nf := f.Normalised()
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if matches(r, nf) {
			out = append(out, r)
		}
	}
	return out
}

// matches expects a normalised filter.
func matches(r domain.Record, f domain.FilterState) bool {
	if r == nil {
		return false
	}
	return matchesSearch(r, f.Search) &&
		matchesSet(Text(r, domain.FieldSegment), f.Segments) &&
		matchesSet(Text(r, domain.FieldTRL), f.TRLs) &&
		matchesSet(Text(r, domain.FieldFundingStatus), f.Funding) &&
		matchesRecognition(r, f.Recognition)
}

func matchesSearch(r domain.Record, search string) bool {
	if search == "" {
		return true
	}
	for _, field := range searchFields {
		if strings.Contains(strings.ToLower(Text(r, field)), search) {
			return true
		}
	}
	return false
}

// matchesSet is a multi-select check. An empty selection matches everything.
func matchesSet(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	return slices.Contains(selected, strings.TrimSpace(value))
}

// matchesRecognition ORs the selected categories.
func matchesRecognition(r domain.Record, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	awards, media := HasAwards(r), HasMedia(r)
	for _, category := range selected {
		switch category {
		case domain.RecognitionAwards:
			if awards {
				return true
			}
		case domain.RecognitionMedia:
			if media {
				return true
			}
		case domain.RecognitionOthers:
			if !awards && !media {
				return true
			}
		}
	}
	return false
}

// FacetOptions lists the values present for each facet with record counts.
// Segment and funding values sort alphabetically, TRL values by level, and
// recognition always lists its three categories in display order.
func FacetOptions(records []domain.Record) domain.FacetOptions {
	counts := map[domain.Facet]map[string]int{
		domain.FacetSegment: {},
		domain.FacetTRL:     {},
		domain.FacetFunding: {},
	}
	recognition := map[string]int{}

	for _, r := range records {
		if v := strings.TrimSpace(Text(r, domain.FieldSegment)); v != "" {
			counts[domain.FacetSegment][v]++
		}
		if v := strings.TrimSpace(Text(r, domain.FieldTRL)); v != "" {
			counts[domain.FacetTRL][v]++
		}
		if v := strings.TrimSpace(Text(r, domain.FieldFundingStatus)); v != "" {
			counts[domain.FacetFunding][v]++
		}
		for _, category := range Recognition(r) {
			recognition[category]++
		}
	}

	opts := domain.FacetOptions{}
	for facet, values := range counts {
		list := make([]domain.FacetValue, 0, len(values))
		for v, n := range values {
			list = append(list, domain.FacetValue{Value: v, Count: n})
		}
		if facet == domain.FacetTRL {
			slices.SortFunc(list, func(a, b domain.FacetValue) int {
				return cmp.Or(
					cmp.Compare(FirstInteger(a.Value), FirstInteger(b.Value)),
					strings.Compare(a.Value, b.Value),
				)
			})
		} else {
			slices.SortFunc(list, func(a, b domain.FacetValue) int {
				return strings.Compare(a.Value, b.Value)
			})
		}
		opts[facet] = list
	}

	rec := make([]domain.FacetValue, 0, 3)
	for _, category := range domain.RecognitionCategories() {
		rec = append(rec, domain.FacetValue{Value: category, Count: recognition[category]})
	}
	opts[domain.FacetRecognition] = rec

	return opts
}
