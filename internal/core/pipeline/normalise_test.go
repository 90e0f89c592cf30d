package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

var allFields = []domain.Field{
	domain.FieldApplicationID, domain.FieldApplicantName, domain.FieldCompanyName,
	domain.FieldInnovationTitle, domain.FieldSegment, domain.FieldTRL,
	domain.FieldFundingAmount, domain.FieldFundingStatus, domain.FieldTeamSize,
	domain.FieldAbout, domain.FieldFundingSummary, domain.FieldPatents,
	domain.FieldAwardsSummary, domain.FieldTeamSummary,
}

func TestValueOf_NeverPanicsAndDefaults(t *testing.T) {
	records := []domain.Record{
		legacy(t, "BHAR-1", nil),
		record(t, `{"ApplicationId": "BHAR-2", "About": null}`),
		record(t, `{"ApplicationId": "BHAR-3", "Traction and Achievements": "not an object"}`),
		nil,
	}

	for _, r := range records {
		for _, f := range allFields {
			assert.NotPanics(t, func() {
				_, _ = ValueOf(r, f)
				n := Number(r, f)
				d := Display(r, f)
				if f.IsNumeric() && f != domain.FieldTRL {
					assert.Zero(t, n)
				}
				assert.NotEmpty(t, d)
			})
		}
	}
}

func TestValueOf_LegacyCandidates(t *testing.T) {
	r := record(t, `{
		"ApplicationId": "BHAR-1",
		"Startup/Company Popular (Brand) Name (if any)": " ",
		"Venture Name": "Acme",
		"Stage 1 Registration_Name": "Asha",
		"Innovation Title": "Smart Plough",
		"Technology Readiness Level (TRL)": 7,
		"Select the primary segment for your innovation: (Select only one)": " Agritech ",
		"Are you funded by any VC/Angel/Govt?": "Yes, angel"
	}`)

	assert.Equal(t, "Acme", Display(r, domain.FieldCompanyName))
	assert.Equal(t, "Asha", Display(r, domain.FieldApplicantName))
	assert.Equal(t, "Smart Plough", Text(r, domain.FieldInnovationTitle))
	assert.Equal(t, "7", Display(r, domain.FieldTRL))
	assert.Equal(t, float64(7), Number(r, domain.FieldTRL))
	assert.Equal(t, "Agritech", Text(r, domain.FieldSegment))
	assert.Equal(t, domain.FundedYes, Text(r, domain.FieldFundingStatus))
}

func TestValueOf_LegacyFundingAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"number", float64(250000), 250000},
		{"rupee string", "₹1,000", 1000},
		{"indian grouping", "1,00,000", 100000},
		{"plain string", "250000", 250000},
		{"narrative", "Raised ₹2,500 from angels", 2500},
		{"unparsable", "a few lakhs", 0},
		{"nan", "nan", 0},
		{"infinity", "Infinity", 0},
		{"inf", "inf", 0},
		{"negative infinity", "-Infinity", 0},
		{"exponent", "1e6", 0},
		{"fraction", "₹1,500.75", 1500.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := legacy(t, "BHAR-1", map[string]any{"Total Funding Raised": tt.in})
			assert.Equal(t, tt.want, Number(r, domain.FieldFundingAmount))
		})
	}
}

func TestValueOf_LegacyTeamSize(t *testing.T) {
	assert.Equal(t, float64(12), Number(legacy(t, "A", map[string]any{"Team Size (full-time equivalents)": float64(12)}), domain.FieldTeamSize))
	assert.Equal(t, float64(5), Number(legacy(t, "B", map[string]any{"Team Size (full-time equivalents)": "5 FTE"}), domain.FieldTeamSize))
	assert.Equal(t, "N/A", Display(legacy(t, "C", nil), domain.FieldTeamSize))
}

func TestValueOf_Summarized(t *testing.T) {
	r := record(t, `{
		"ApplicationId": "BHAR-2",
		"Company Name": "Beta Labs",
		"Segment": "Health",
		"TRL Level": "TRL 6",
		"About": {"paragraph1": "One.", "paragraph2": "Two."},
		"Traction and Achievements": {
			"Funding/Grants": "Raised ₹5,00,000 in funding from State Fund",
			"Patents & IP": "2 patents granted",
			"Awards and Achievements": "Received 3 awards and recognitions.",
			"Team": "Team of 8 members, including 2 PhDs"
		}
	}`)

	assert.Equal(t, "Beta Labs", Display(r, domain.FieldCompanyName))
	assert.Equal(t, "N/A", Display(r, domain.FieldApplicantName))
	assert.Equal(t, float64(6), Number(r, domain.FieldTRL))
	assert.Equal(t, float64(500000), Number(r, domain.FieldFundingAmount))
	assert.Equal(t, domain.FundedYes, Text(r, domain.FieldFundingStatus))
	assert.Equal(t, float64(8), Number(r, domain.FieldTeamSize))
	assert.Equal(t, "8", Display(r, domain.FieldTeamSize))
	assert.Equal(t, "One.\n\nTwo.", Text(r, domain.FieldAbout))
	assert.Equal(t, "2 patents granted", Text(r, domain.FieldPatents))
}

func TestMissingTeamSize(t *testing.T) {
	r := record(t, `{"ApplicationId": "BHAR-9", "Traction and Achievements": {"Team": "A small founding crew"}}`)
	assert.Equal(t, domain.NotAvailable, Display(r, domain.FieldTeamSize))
	assert.Zero(t, Number(r, domain.FieldTeamSize))
}

func TestMineFundingAmount(t *testing.T) {
	tests := []struct {
		text   string
		want   float64
		wantOK bool
	}{
		{"Raised ₹500", 500, true},
		{"raised 1,200 from friends", 1200, true},
		{"Grant of ₹ 25,000 from DST", 25000, true},
		{"10,000 in grants from BIRAC", 10000, true},
		{"50000 in funding", 50000, true},
		{"No funding or grants reported", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := MineFundingAmount(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMineFundingStatus(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"No funding or grants reported", domain.FundedNo},
		{"Funding not reported", domain.FundedNo},
		{"Raised ₹500", domain.FundedYes},
		{"Received a grant", domain.FundedYes},
		{"Seed round of $20k", domain.FundedYes},
		{"Bootstrapped", domain.FundedNo},
		{"", domain.FundedNo},
		{"Raised nothing, no grants", domain.FundedNo},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, MineFundingStatus(tt.text))
		})
	}
}

func TestMineTeamSize(t *testing.T) {
	n, ok := MineTeamSize("Team of 4 members")
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	_, ok = MineTeamSize("team of four")
	assert.False(t, ok)
}

func TestAwardAndMediaCounts(t *testing.T) {
	tests := []struct {
		name       string
		rec        domain.Record
		awards     int
		media      int
		categories []string
	}{
		{
			name: "legacy informative",
			rec: record(t, `{"ApplicationId": "A",
				"awards": [{"Award/Recognition": "Best"}, {"Award/Recognition": "nan", "Details": ""}],
				"media_coverage": [{"Website links": "https://x"}]}`),
			awards:     1,
			media:      1,
			categories: []string{domain.RecognitionAwards, domain.RecognitionMedia},
		},
		{
			name:       "legacy uninformative",
			rec:        record(t, `{"ApplicationId": "B", "awards": [{"Year": "2021"}], "media_coverage": []}`),
			categories: []string{domain.RecognitionOthers},
		},
		{
			name:       "summarized received",
			rec:        record(t, `{"ApplicationId": "C", "Traction and Achievements": {"Awards and Achievements": "Received 4 awards and recognitions."}}`),
			awards:     4,
			categories: []string{domain.RecognitionAwards},
		},
		{
			name:       "summarized none",
			rec:        record(t, `{"ApplicationId": "D", "Traction and Achievements": {"Awards and Achievements": "No awards reported"}}`),
			categories: []string{domain.RecognitionOthers},
		},
		{
			name:       "summarized other text",
			rec:        record(t, `{"ApplicationId": "E", "Traction and Achievements": {"Awards and Achievements": "Winner of State Innovation Challenge"}, "Media Coverage": [{"type": "news"}, {"link": "https://y"}]}`),
			awards:     1,
			media:      1,
			categories: []string{domain.RecognitionAwards, domain.RecognitionMedia},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.awards, AwardCount(tt.rec))
			assert.Equal(t, tt.media, MediaCount(tt.rec))
			assert.Equal(t, tt.categories, Recognition(tt.rec))
		})
	}
}

func TestFirstInteger(t *testing.T) {
	assert.Equal(t, 7, FirstInteger("TRL 7"))
	assert.Equal(t, 3, FirstInteger("3 - Proof of concept"))
	assert.Equal(t, 0, FirstInteger("unknown"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹0", FormatAmount(0))
	assert.Equal(t, "₹500", FormatAmount(500))
	assert.Equal(t, "₹1,000", FormatAmount(1000))
	assert.Equal(t, "₹1,234,567", FormatAmount(1234567))
	assert.Equal(t, "₹-1,000", FormatAmount(-1000))
	assert.Equal(t, "₹1,501", FormatAmount(1500.75))
	assert.Equal(t, "₹1,500", FormatAmount(1500.25))
	assert.Equal(t, "₹0", FormatAmount(-0.2))
	assert.Equal(t, "₹10,000,000,000,000,000,000", FormatAmount(1e19))
	assert.Equal(t, domain.NotAvailable, FormatAmount(math.Inf(1)))
	assert.Equal(t, domain.NotAvailable, FormatAmount(math.Inf(-1)))
	assert.Equal(t, domain.NotAvailable, FormatAmount(math.NaN()))
}

func TestDisplay_NonFiniteFundingIsAbsent(t *testing.T) {
	for _, in := range []string{"Infinity", "inf", "NaN"} {
		r := legacy(t, "BHAR-1", map[string]any{"Total Funding Raised": in})
		assert.Equal(t, domain.NotAvailable, Display(r, domain.FieldFundingAmount), in)
		assert.Zero(t, Number(r, domain.FieldFundingAmount), in)
	}
}

func TestSortName(t *testing.T) {
	assert.Equal(t, "acme", SortName(legacy(t, "X", map[string]any{"Venture Name": "Acme"})))
	assert.Equal(t, "plough", SortName(legacy(t, "X", map[string]any{"Innovation Title": "Plough"})))
	assert.Equal(t, "bhar-7", SortName(legacy(t, "BHAR-7", nil)))
}
