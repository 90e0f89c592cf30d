package pipeline

import (
	"cmp"
	"slices"
	"strings"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// Compare orders two records for key. Numeric and count keys put the bigger
// value first; alphabetical is ascending and ignores case. SortNone and
// unknown keys report every pair as equal.
func Compare(a, b domain.Record, key domain.SortKey) int {
	switch key {
	case domain.SortAlphabetical:
		return strings.Compare(SortName(a), SortName(b))
	case domain.SortMostFunded, domain.SortLargestTeam, domain.SortHighestTRL,
		domain.SortMostAwarded, domain.SortMostRecognized:
		return cmp.Compare(sortValue(b, key), sortValue(a, key))
	default:
		return 0
	}
}

// Sort returns a sorted copy of records. The sort is stable so ties keep
// collection order. SortNone returns the records in their given order.
func Sort(records []domain.Record, key domain.SortKey) []domain.Record {
	out := slices.Clone(records)
	if key == domain.SortNone || !key.IsValid() {
		return out
	}

	// Resolve each key once, not per comparison.
	type keyed struct {
		rec  domain.Record
		num  float64
		name string
	}
	items := make([]keyed, len(out))
	for i, r := range out {
		items[i] = keyed{rec: r}
		if key == domain.SortAlphabetical {
			items[i].name = SortName(r)
		} else {
			items[i].num = sortValue(r, key)
		}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		if key == domain.SortAlphabetical {
			return strings.Compare(a.name, b.name)
		}
		return cmp.Compare(b.num, a.num)
	})

	for i := range items {
		out[i] = items[i].rec
	}
	return out
}

func sortValue(r domain.Record, key domain.SortKey) float64 {
	switch key {
	case domain.SortMostFunded:
		return Number(r, domain.FieldFundingAmount)
	case domain.SortLargestTeam:
		return Number(r, domain.FieldTeamSize)
	case domain.SortHighestTRL:
		return Number(r, domain.FieldTRL)
	case domain.SortMostAwarded:
		return float64(AwardCount(r))
	case domain.SortMostRecognized:
		return float64(AwardCount(r) + MediaCount(r))
	default:
		return 0
	}
}
