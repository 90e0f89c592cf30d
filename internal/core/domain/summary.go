package domain

// Summary is the canonical display view of a record.
// Every display field is resolved; absent values read "N/A".
type Summary struct {
	ApplicationID   string  `json:"applicationId"`
	Shape           Shape   `json:"shape"`
	ApplicantName   string  `json:"applicantName"`
	CompanyName     string  `json:"companyName"`
	InnovationTitle string  `json:"innovationTitle"`
	Segment         string  `json:"segment"`
	TRL             string  `json:"trl"`
	FundingStatus   string  `json:"fundingStatus"`
	FundingAmount   float64 `json:"fundingAmount"`
	Funding         string  `json:"funding"`
	TeamSize        string  `json:"teamSize"`

	// About holds the description paragraphs. Legacy records usually have none.
	About []string `json:"about,omitempty"`

	// Narrative traction lines. Empty for legacy records without them.
	FundingSummary string `json:"fundingSummary,omitempty"`
	Patents        string `json:"patents,omitempty"`
	AwardsSummary  string `json:"awardsSummary,omitempty"`
	TeamSummary    string `json:"teamSummary,omitempty"`

	AwardCount  int      `json:"awardCount"`
	MediaCount  int      `json:"mediaCount"`
	Recognition []string `json:"recognition"`

	Awards    []Award       `json:"awards,omitempty"`
	Media     []MediaItem   `json:"media,omitempty"`
	Team      []TeamMember  `json:"team,omitempty"`
	Documents []DocumentRef `json:"documents,omitempty"`
}

// Title returns the best heading for the record: company name, then
// innovation title, then the application id.
func (s Summary) Title() string {
	if s.CompanyName != NotAvailable && s.CompanyName != "" {
		return s.CompanyName
	}
	if s.InnovationTitle != NotAvailable && s.InnovationTitle != "" {
		return s.InnovationTitle
	}
	return s.ApplicationID
}

// DocumentRef is a labelled link to one of the applicant's documents.
type DocumentRef struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Redacted returns a copy without document links or team contact details,
// as shown before the documents gate is opened.
func (s Summary) Redacted() Summary {
	s.Documents = nil
	if len(s.Team) > 0 {
		team := make([]TeamMember, len(s.Team))
		for i, m := range s.Team {
			team[i] = TeamMember{Name: m.Name, Role: m.Role, Credentials: m.Credentials}
		}
		s.Team = team
	}
	return s
}
