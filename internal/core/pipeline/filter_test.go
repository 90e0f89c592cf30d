package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

func fixtureCollection(t *testing.T) []domain.Record {
	t.Helper()
	return []domain.Record{
		record(t, `{"ApplicationId": "BHAR-00001", "Venture Name": "Acme Agro", "Name": "Asha Rao",
			"Select the primary segment for your innovation: (Select only one)": "Agritech",
			"Technology Readiness Level (TRL)": "7", "Are you funded by any VC/Angel/Govt?": "Yes",
			"awards": [{"Award/Recognition": "Best Startup"}]}`),
		record(t, `{"ApplicationId": "BHAR-00002", "Company Name": "Beta Health", "Segment": " Healthtech ",
			"TRL Level": "5", "Traction and Achievements": {"Funding/Grants": "No funding or grants reported",
			"Awards and Achievements": "No awards reported"},
			"Media Coverage": [{"link": "https://news.example/beta"}]}`),
		record(t, `{"ApplicationId": "BHAR-00003", "Company Name": "Gamma Grid", "Segment": "Energy",
			"TRL Level": "7", "Traction and Achievements": {"Funding/Grants": "Raised ₹10,000"}}`),
		record(t, `{"ApplicationId": "BHAR-00004", "Venture Name": "delta farms",
			"Select the primary segment for your innovation: (Select only one)": "Agritech",
			"Are you funded by any VC/Angel/Govt?": "No"}`),
	}
}

func TestFilter_EmptyReturnsAllInOrder(t *testing.T) {
	records := fixtureCollection(t)
	got := Filter(records, domain.FilterState{})
	assert.Equal(t, ids(records), ids(got))
}

func TestFilter_Idempotent(t *testing.T) {
	records := fixtureCollection(t)
	states := []domain.FilterState{
		{Search: "a"},
		{Segments: []string{"Agritech"}},
		{Recognition: []string{domain.RecognitionOthers}},
		{TRLs: []string{"7"}, Funding: []string{domain.FundedYes}},
	}

	for _, f := range states {
		once := Filter(records, f)
		twice := Filter(once, f)
		assert.Equal(t, ids(once), ids(twice))
	}
}

func TestFilter_Search(t *testing.T) {
	records := fixtureCollection(t)

	tests := []struct {
		search string
		want   []string
	}{
		{"ACME", []string{"BHAR-00001"}},
		{"asha", []string{"BHAR-00001"}},
		{"bhar-00003", []string{"BHAR-00003"}},
		{"  Delta  ", []string{"BHAR-00004"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := Filter(records, domain.FilterState{Search: tt.search})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_Facets(t *testing.T) {
	records := fixtureCollection(t)

	tests := []struct {
		name   string
		filter domain.FilterState
		want   []string
	}{
		{"segment", domain.FilterState{Segments: []string{"Agritech"}}, []string{"BHAR-00001", "BHAR-00004"}},
		{"segment trimmed", domain.FilterState{Segments: []string{"Healthtech"}}, []string{"BHAR-00002"}},
		{"trl", domain.FilterState{TRLs: []string{"7"}}, []string{"BHAR-00001", "BHAR-00003"}},
		{"funded yes", domain.FilterState{Funding: []string{domain.FundedYes}}, []string{"BHAR-00001", "BHAR-00003"}},
		{"funded no", domain.FilterState{Funding: []string{domain.FundedNo}}, []string{"BHAR-00002", "BHAR-00004"}},
		{"and across facets", domain.FilterState{Segments: []string{"Agritech"}, TRLs: []string{"7"}}, []string{"BHAR-00001"}},
		{"search and facet", domain.FilterState{Search: "gamma", Segments: []string{"Agritech"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(records, tt.filter)))
		})
	}
}

func TestFilter_RecognitionIsOR(t *testing.T) {
	records := fixtureCollection(t)

	awards := ids(Filter(records, domain.FilterState{Recognition: []string{domain.RecognitionAwards}}))
	others := ids(Filter(records, domain.FilterState{Recognition: []string{domain.RecognitionOthers}}))
	both := ids(Filter(records, domain.FilterState{Recognition: []string{domain.RecognitionAwards, domain.RecognitionOthers}}))

	assert.Equal(t, []string{"BHAR-00001"}, awards)
	assert.Equal(t, []string{"BHAR-00003", "BHAR-00004"}, others)
	assert.Equal(t, []string{"BHAR-00001", "BHAR-00003", "BHAR-00004"}, both)

	media := ids(Filter(records, domain.FilterState{Recognition: []string{domain.RecognitionMedia}}))
	assert.Equal(t, []string{"BHAR-00002"}, media)
}

func TestMatches(t *testing.T) {
	records := fixtureCollection(t)
	assert.True(t, Matches(records[0], domain.FilterState{Search: " ACME "}))
	assert.False(t, Matches(records[0], domain.FilterState{Segments: []string{"Energy"}}))
	assert.False(t, Matches(nil, domain.FilterState{}))
}

func TestFacetOptions(t *testing.T) {
	opts := FacetOptions(fixtureCollection(t))

	require.Contains(t, opts, domain.FacetSegment)
	assert.Equal(t, []domain.FacetValue{
		{Value: "Agritech", Count: 2},
		{Value: "Energy", Count: 1},
		{Value: "Healthtech", Count: 1},
	}, opts[domain.FacetSegment])

	assert.Equal(t, []domain.FacetValue{
		{Value: "5", Count: 1},
		{Value: "7", Count: 2},
	}, opts[domain.FacetTRL])

	assert.Equal(t, []domain.FacetValue{
		{Value: domain.FundedNo, Count: 2},
		{Value: domain.FundedYes, Count: 2},
	}, opts[domain.FacetFunding])

	assert.Equal(t, []domain.FacetValue{
		{Value: domain.RecognitionAwards, Count: 1},
		{Value: domain.RecognitionMedia, Count: 1},
		{Value: domain.RecognitionOthers, Count: 2},
	}, opts[domain.FacetRecognition])
}

func TestFacetOptions_Empty(t *testing.T) {
	opts := FacetOptions(nil)
	assert.Empty(t, opts[domain.FacetSegment])
	assert.Len(t, opts[domain.FacetRecognition], 3)
}
