package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// KeyApplicationID is the identity key present in both shapes.
const KeyApplicationID = "ApplicationId"

// Summarized shape keys.
const (
	KeyAbout          = "About"
	KeyTraction       = "Traction and Achievements"
	KeyFundingGrants  = "Funding/Grants"
	KeyPatentsIP      = "Patents & IP"
	KeyAwardsAchieved = "Awards and Achievements"
	KeyTeamNarrative  = "Team"
	KeyMediaCoverage  = "Media Coverage"
	KeyTeamMembers    = "Team Members"
	KeyOriginalData   = "Original Data"
)

// Legacy shape list keys.
const (
	KeyLegacyAwards = "awards"
	KeyLegacyMedia  = "media_coverage"
	KeyLegacyTeam   = "team_members"
)

// LegacyKeyPrefixes are the sheet prefixes the consolidation tooling may leave
// on legacy keys. A key is looked up bare first, then with each prefix.
var LegacyKeyPrefixes = []string{
	"Stage 2 Application_",
	"Stage 1 Registration_",
}

// DocumentLink maps a display label to the legacy key holding the link.
type DocumentLink struct {
	Label string
	Key   string
}

// LegacyDocumentKeys lists the document links shown behind the documents gate
// for legacy records, in display order.
var LegacyDocumentKeys = []DocumentLink{
	{Label: "Website", Key: "Website Link or Link to Social Media Handle"},
	{Label: "Demo Video", Key: "Innovation/Product Demo Video"},
	{Label: "High Res Video", Key: "Link to high resolution video file"},
	{Label: "Presentation Deck", Key: "Presentation Deck (Max 15 slides)"},
	{Label: "Patent Documentation", Key: "Patent Documentation"},
	{Label: "Publications", Key: "Publications"},
	{Label: "Prototype Media", Key: "Prototype Images/Videos"},
	{Label: "Team CVs", Key: "Team CVs (One single PDF)"},
	{Label: "Registration Certificate", Key: "Company Registration Certificate (for startups)"},
}

// DetectShape infers the record shape from marker keys.
// An "About" or "Traction and Achievements" key implies the summarized shape.
func DetectShape(raw map[string]any) Shape {
	if _, ok := raw[KeyAbout]; ok {
		return ShapeSummarized
	}
	if _, ok := raw[KeyTraction]; ok {
		return ShapeSummarized
	}
	return ShapeLegacy
}

// NewRecord builds the typed record for a raw JSON object.
func NewRecord(raw map[string]any) (Record, error) {
	id := StringValue(raw[KeyApplicationID])
	if id == "" {
		return nil, ErrMissingApplicationID
	}

	if DetectShape(raw) == ShapeSummarized {
		return newSummarized(id, raw), nil
	}
	return newLegacy(id, raw), nil
}

func newLegacy(id string, raw map[string]any) *LegacyRecord {
	rec := &LegacyRecord{ID: id, Raw: raw}

	for _, item := range objectList(raw[KeyLegacyAwards]) {
		rec.Awards = append(rec.Awards, Award{
			Name:    StringValue(item["Award/Recognition"]),
			Body:    StringValue(item["Awarding Body"]),
			Year:    yearValue(item["Year"]),
			Details: StringValue(item["Details"]),
		})
	}

	for _, item := range objectList(raw[KeyLegacyMedia]) {
		rec.Media = append(rec.Media, MediaItem{
			Type:        StringValue(item["Type"]),
			Link:        StringValue(item["Website links"]),
			Year:        yearValue(item["Year"]),
			Description: StringValue(item["Details"]),
		})
	}

	for _, item := range objectList(raw[KeyLegacyTeam]) {
		rec.Team = append(rec.Team, TeamMember{
			Name:        StringValue(item["Name"]),
			Role:        StringValue(item["Role"]),
			Email:       StringValue(item["Email"]),
			Mobile:      StringValue(item["Mobile Number"]),
			Gender:      StringValue(item["Gender"]),
			DateOfBirth: StringValue(item["Date of Birth"]),
		})
	}

	return rec
}

func newSummarized(id string, raw map[string]any) *SummarizedRecord {
	rec := &SummarizedRecord{ID: id, Raw: raw, Documents: map[string]string{}}

	switch about := raw[KeyAbout].(type) {
	case map[string]any:
		rec.About = About{
			Paragraph1: StringValue(about["paragraph1"]),
			Paragraph2: StringValue(about["paragraph2"]),
			WordCount:  intValue(about["word_count"]),
		}
	case string:
		rec.About = About{Paragraph1: strings.TrimSpace(about)}
	}

	if traction, ok := raw[KeyTraction].(map[string]any); ok {
		rec.Traction = Traction{
			Funding: StringValue(traction[KeyFundingGrants]),
			Patents: StringValue(traction[KeyPatentsIP]),
			Awards:  StringValue(traction[KeyAwardsAchieved]),
			Team:    StringValue(traction[KeyTeamNarrative]),
		}
	}

	for _, item := range objectList(raw[KeyMediaCoverage]) {
		rec.Media = append(rec.Media, MediaItem{
			Type:        StringValue(item["type"]),
			Link:        StringValue(item["link"]),
			Description: StringValue(item["description"]),
		})
	}

	for _, item := range objectList(raw[KeyTeamMembers]) {
		rec.Team = append(rec.Team, TeamMember{
			Name:        StringValue(item["name"]),
			Role:        StringValue(item["role"]),
			Email:       StringValue(item["email"]),
			Mobile:      StringValue(item["mobile"]),
			Credentials: StringValue(item["credentials"]),
		})
	}

	if docs, ok := raw[KeyOriginalData].(map[string]any); ok {
		for label, v := range docs {
			if s := StringValue(v); s != "" {
				rec.Documents[label] = s
			}
		}
	}

	return rec
}

// StringValue renders a decoded JSON value as trimmed text.
// Missing values, lists, objects and the literal "nan" render as "".
func StringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(t)
		if strings.EqualFold(s, "nan") {
			return ""
		}
		return s
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case []any, map[string]any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// yearValue is StringValue with the spreadsheet "Invalid Date" marker dropped.
func yearValue(v any) string {
	s := StringValue(v)
	if strings.EqualFold(s, "invalid date") {
		return ""
	}
	return s
}

func intValue(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func objectList(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
