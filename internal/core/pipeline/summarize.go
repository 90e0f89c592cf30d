package pipeline

import (
	"slices"
	"strings"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// summarizedDocumentOrder is the display order of "Original Data" links.
var summarizedDocumentOrder = []string{
	"Website", "Demo Video", "High Res Video", "Presentation Deck",
	"Patent Documentation", "Publications", "Team CVs",
}

// Summarize builds the display view of a record used by every renderer.
func Summarize(r domain.Record) domain.Summary {
	s := domain.Summary{
		ApplicationID:   r.ApplicationID(),
		Shape:           r.Shape(),
		ApplicantName:   Display(r, domain.FieldApplicantName),
		CompanyName:     Display(r, domain.FieldCompanyName),
		InnovationTitle: Display(r, domain.FieldInnovationTitle),
		Segment:         Display(r, domain.FieldSegment),
		TRL:             Display(r, domain.FieldTRL),
		FundingStatus:   Display(r, domain.FieldFundingStatus),
		FundingAmount:   Number(r, domain.FieldFundingAmount),
		Funding:         Display(r, domain.FieldFundingAmount),
		TeamSize:        Display(r, domain.FieldTeamSize),
		FundingSummary:  Text(r, domain.FieldFundingSummary),
		Patents:         Text(r, domain.FieldPatents),
		AwardsSummary:   Text(r, domain.FieldAwardsSummary),
		TeamSummary:     Text(r, domain.FieldTeamSummary),
		AwardCount:      AwardCount(r),
		MediaCount:      MediaCount(r),
		Recognition:     Recognition(r),
	}

	switch rec := r.(type) {
	case *domain.LegacyRecord:
		if about := Text(r, domain.FieldAbout); about != "" {
			s.About = []string{about}
		}
		for _, a := range rec.Awards {
			if a.Informative() {
				s.Awards = append(s.Awards, a)
			}
		}
		for _, m := range rec.Media {
			if m.Informative() {
				s.Media = append(s.Media, m)
			}
		}
		s.Team = slices.Clone(rec.Team)
		for _, doc := range domain.LegacyDocumentKeys {
			if v, ok := lookupLegacy(rec.Raw, doc.Key); ok {
				s.Documents = append(s.Documents, domain.DocumentRef{Label: doc.Label, URL: domain.StringValue(v)})
			}
		}

	case *domain.SummarizedRecord:
		s.About = rec.About.Paragraphs()
		for _, m := range rec.Media {
			if m.Link != "" || m.Description != "" {
				s.Media = append(s.Media, m)
			}
		}
		s.Team = slices.Clone(rec.Team)
		s.Documents = summarizedDocuments(rec.Documents)
	}

	return s
}

func summarizedDocuments(docs map[string]string) []domain.DocumentRef {
	if len(docs) == 0 {
		return nil
	}
	out := make([]domain.DocumentRef, 0, len(docs))
	for _, label := range summarizedDocumentOrder {
		if url := docs[label]; url != "" {
			out = append(out, domain.DocumentRef{Label: label, URL: url})
		}
	}

	var extra []string
	for label := range docs {
		if !slices.Contains(summarizedDocumentOrder, label) {
			extra = append(extra, label)
		}
	}
	slices.SortFunc(extra, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	for _, label := range extra {
		out = append(out, domain.DocumentRef{Label: label, URL: docs[label]})
	}
	return out
}
