package pipeline

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// legacyKeys lists candidate keys per field for the legacy shape, in order.
// Each key is tried bare and then with every domain.LegacyKeyPrefixes prefix.
var legacyKeys = map[domain.Field][]string{
	domain.FieldApplicantName: {"Name", "Applicant Name", "Full Name"},
	domain.FieldCompanyName: {
		"Startup/Company Popular (Brand) Name (if any)",
		"Venture Name",
		"Startup/Company Legal Name",
		"Company Name",
	},
	domain.FieldInnovationTitle: {"Innovation Title"},
	domain.FieldSegment: {
		"Select the primary segment for your innovation: (Select only one)",
		"Segment",
	},
	domain.FieldTRL:           {"Technology Readiness Level (TRL)", "TRL Level", "TRL"},
	domain.FieldFundingAmount: {"Total Funding Raised", "Total Amount Received"},
	domain.FieldFundingStatus: {"Are you funded by any VC/Angel/Govt?", "Funded"},
	domain.FieldTeamSize:      {"Team Size (full-time equivalents)", "Team Size"},
	domain.FieldAbout: {
		"Brief Description of the Innovation",
		"Innovation Description",
		"Solution Strength",
	},
	domain.FieldFundingSummary: {"Fund Source", "Lead Investors"},
	domain.FieldPatents:        {"Patent Details", "Intellectual Property Status"},
	domain.FieldTeamSummary:    {"Team Capacity"},
}

// summarizedKeys lists candidate top-level keys per field for the summarized
// shape. Traction-derived fields are resolved separately.
var summarizedKeys = map[domain.Field][]string{
	domain.FieldApplicantName:   {"Applicant Name", "Name"},
	domain.FieldCompanyName:     {"Company Name", "Venture Name"},
	domain.FieldInnovationTitle: {"Innovation Title"},
	domain.FieldSegment:         {"Segment"},
	domain.FieldTRL:             {"TRL Level", "TRL"},
}

var (
	teamOfPattern = regexp.MustCompile(`Team of (\d+)`)

	fundingAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)raised\s*₹?\s*([\d,]+)`),
		regexp.MustCompile(`(?i)₹\s*([\d,]+)`),
		regexp.MustCompile(`(?i)([\d,]+)\s*(?:in funding|in grants)`),
	}

	receivedAwardsPattern = regexp.MustCompile(`(?i)received\s+(\d+)\s+awards?`)

	firstIntegerPattern = regexp.MustCompile(`\d+`)

	bareAmountPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

var (
	negativeFundingMarkers = []string{"no funding", "not reported", "no grants"}
	positiveFundingMarkers = []string{"raised", "received", "₹", "$", "€", "£"}
)

// ValueOf resolves a logical field from either record shape.
// The second result is false when no candidate produced a value.
// Numeric fields resolve to float64; everything else to a trimmed string.
func ValueOf(r domain.Record, f domain.Field) (any, bool) {
	if r == nil {
		return nil, false
	}
	if f == domain.FieldApplicationID {
		id := r.ApplicationID()
		return id, id != ""
	}

	switch rec := r.(type) {
	case *domain.LegacyRecord:
		return legacyValue(rec, f)
	case *domain.SummarizedRecord:
		return summarizedValue(rec, f)
	default:
		return nil, false
	}
}

// Number returns a numeric view of the field, 0 when absent.
// TRL resolves to the first integer in its text.
func Number(r domain.Record, f domain.Field) float64 {
	v, ok := ValueOf(r, f)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case string:
		if f == domain.FieldTRL {
			return float64(FirstInteger(t))
		}
		n, ok := parseAmount(t)
		if !ok {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Display returns the field as display text, "N/A" when absent.
func Display(r domain.Record, f domain.Field) string {
	v, ok := ValueOf(r, f)
	if !ok {
		return domain.NotAvailable
	}
	switch t := v.(type) {
	case float64:
		if f == domain.FieldFundingAmount {
			return FormatAmount(t)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	default:
		return domain.NotAvailable
	}
}

// Text returns the field as text for matching, "" when absent.
func Text(r domain.Record, f domain.Field) string {
	v, ok := ValueOf(r, f)
	if !ok {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	return Display(r, f)
}

func legacyValue(r *domain.LegacyRecord, f domain.Field) (any, bool) {
	keys := legacyKeys[f]
	switch f {
	case domain.FieldFundingAmount:
		for _, key := range keys {
			v, ok := lookupLegacy(r.Raw, key)
			if !ok {
				continue
			}
			if n, ok := numberValue(v); ok {
				return n, true
			}
		}
		return nil, false

	case domain.FieldTeamSize:
		for _, key := range keys {
			v, ok := lookupLegacy(r.Raw, key)
			if !ok {
				continue
			}
			if n, ok := v.(float64); ok {
				return n, true
			}
			if s := domain.StringValue(v); s != "" {
				if m := firstIntegerPattern.FindString(s); m != "" {
					n, err := strconv.ParseFloat(m, 64)
					if err == nil {
						return n, true
					}
				}
			}
		}
		return nil, false

	case domain.FieldFundingStatus:
		for _, key := range keys {
			if v, ok := lookupLegacy(r.Raw, key); ok {
				return yesNo(domain.StringValue(v)), true
			}
		}
		return nil, false
	}

	for _, key := range keys {
		if v, ok := lookupLegacy(r.Raw, key); ok {
			return domain.StringValue(v), true
		}
	}
	return nil, false
}

func summarizedValue(r *domain.SummarizedRecord, f domain.Field) (any, bool) {
	switch f {
	case domain.FieldFundingAmount:
		if n, ok := MineFundingAmount(r.Traction.Funding); ok {
			return n, true
		}
		return nil, false
	case domain.FieldFundingStatus:
		return MineFundingStatus(r.Traction.Funding), true
	case domain.FieldTeamSize:
		if n, ok := MineTeamSize(r.Traction.Team); ok {
			return float64(n), true
		}
		return nil, false
	case domain.FieldAbout:
		return nonEmpty(strings.Join(r.About.Paragraphs(), "\n\n"))
	case domain.FieldFundingSummary:
		return nonEmpty(r.Traction.Funding)
	case domain.FieldPatents:
		return nonEmpty(r.Traction.Patents)
	case domain.FieldAwardsSummary:
		return nonEmpty(r.Traction.Awards)
	case domain.FieldTeamSummary:
		return nonEmpty(r.Traction.Team)
	}

	for _, key := range summarizedKeys[f] {
		if s := domain.StringValue(r.Raw[key]); s != "" {
			return s, true
		}
	}
	return nil, false
}

// lookupLegacy finds the first non-empty value for key, bare or prefixed.
func lookupLegacy(raw map[string]any, key string) (any, bool) {
	if v, ok := raw[key]; ok && domain.StringValue(v) != "" {
		return v, true
	}
	for _, prefix := range domain.LegacyKeyPrefixes {
		if v, ok := raw[prefix+key]; ok && domain.StringValue(v) != "" {
			return v, true
		}
	}
	return nil, false
}

func nonEmpty(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	return s, true
}

func numberValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case int:
		return float64(t), true
	case string:
		return parseAmount(t)
	default:
		return 0, false
	}
}

// parseAmount reads an amount such as "₹1,000", "1,00,000" or "250000".
// Only digits with an optional fraction count as a bare amount, so "inf",
// "NaN" and "1e6" are not numbers. Other text falls back to the funding
// patterns.
func parseAmount(s string) (float64, bool) {
	cleaned := strings.NewReplacer("₹", "", ",", "", " ", "", "Rs.", "", "INR", "").Replace(strings.TrimSpace(s))
	if bareAmountPattern.MatchString(cleaned) {
		if n, err := strconv.ParseFloat(cleaned, 64); err == nil && !math.IsInf(n, 0) {
			return n, true
		}
	}
	return MineFundingAmount(s)
}

// MineFundingAmount extracts an amount from funding narrative text.
// The first matching pattern wins; no match or an unparsable match is 0, false.
func MineFundingAmount(text string) (float64, bool) {
	for _, re := range fundingAmountPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		digits := strings.ReplaceAll(m[1], ",", "")
		n, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// MineFundingStatus classifies funding narrative text as Yes or No.
// Negative markers win over positive ones; the default is No.
func MineFundingStatus(text string) string {
	lower := strings.ToLower(text)
	for _, marker := range negativeFundingMarkers {
		if strings.Contains(lower, marker) {
			return domain.FundedNo
		}
	}
	for _, marker := range positiveFundingMarkers {
		if strings.Contains(lower, marker) {
			return domain.FundedYes
		}
	}
	return domain.FundedNo
}

// MineTeamSize extracts N from "Team of N ...".
func MineTeamSize(text string) (int, bool) {
	m := teamOfPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FirstInteger returns the first integer in s, e.g. 7 for "TRL 7". 0 if none.
func FirstInteger(s string) int {
	m := firstIntegerPattern.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// yesNo maps free-form answers onto Yes/No, leaving other text as is.
func yesNo(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "yes"):
		return domain.FundedYes
	case strings.HasPrefix(lower, "no"):
		return domain.FundedNo
	default:
		return s
	}
}

// FormatAmount renders an amount rounded to whole rupees with thousands
// separators. Non-finite amounts are N/A.
func FormatAmount(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return domain.NotAvailable
	}
	whole := strconv.FormatFloat(math.Round(n), 'f', 0, 64)
	if whole == "-0" {
		whole = "0"
	}
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 && whole[i-1] != '-' {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return "₹" + b.String()
}

// AwardCount counts a record's awards.
// Legacy records count informative award entries. Summarized records mine
// "Received N awards"; "No awards ..." or empty text is 0 and any other text 1.
func AwardCount(r domain.Record) int {
	switch rec := r.(type) {
	case *domain.LegacyRecord:
		n := 0
		for _, a := range rec.Awards {
			if a.Informative() {
				n++
			}
		}
		return n
	case *domain.SummarizedRecord:
		text := strings.TrimSpace(rec.Traction.Awards)
		if text == "" || strings.HasPrefix(strings.ToLower(text), "no award") {
			return 0
		}
		if m := receivedAwardsPattern.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n
			}
		}
		return 1
	default:
		return 0
	}
}

// MediaCount counts informative media mentions.
func MediaCount(r domain.Record) int {
	var items []domain.MediaItem
	legacy := false
	switch rec := r.(type) {
	case *domain.LegacyRecord:
		items, legacy = rec.Media, true
	case *domain.SummarizedRecord:
		items = rec.Media
	}

	n := 0
	for _, m := range items {
		if legacy && m.Informative() || !legacy && (m.Link != "" || m.Description != "") {
			n++
		}
	}
	return n
}

// HasAwards reports whether the record has at least one award.
func HasAwards(r domain.Record) bool { return AwardCount(r) > 0 }

// HasMedia reports whether the record has at least one media mention.
func HasMedia(r domain.Record) bool { return MediaCount(r) > 0 }

// Recognition returns the recognition categories a record belongs to.
func Recognition(r domain.Record) []string {
	var out []string
	if HasAwards(r) {
		out = append(out, domain.RecognitionAwards)
	}
	if HasMedia(r) {
		out = append(out, domain.RecognitionMedia)
	}
	if len(out) == 0 {
		out = append(out, domain.RecognitionOthers)
	}
	return out
}

// SortName is the case-folded name used by alphabetical sorting: company,
// then innovation title, then application id.
func SortName(r domain.Record) string {
	for _, f := range []domain.Field{domain.FieldCompanyName, domain.FieldInnovationTitle, domain.FieldApplicationID} {
		if s := Text(r, f); s != "" {
			return strings.ToLower(s)
		}
	}
	return ""
}
