package render

import (
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/pipeline"
)

// Item is one application in a page listing.
type Item struct {
	domain.Summary
	Comments int `json:"comments"`
}

// Page is the JSON shape of one browse result, shared by the CLI, HTTP and
// MCP surfaces.
type Page struct {
	Collection domain.Collection   `json:"collection"`
	State      domain.ViewState    `json:"state"`
	Number     int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
	Total      int                 `json:"total"`
	Label      string              `json:"label"`
	Empty      bool                `json:"empty"`
	Buttons    []domain.PageButton `json:"buttons,omitempty"`
	Items      []Item              `json:"items"`
}

// NewPage summarises a page for output. counts may be nil.
func NewPage(c domain.Collection, state domain.ViewState, page domain.Page, counts map[string]int) Page {
	items := make([]Item, 0, len(page.Items))
	for _, rec := range page.Items {
		s := pipeline.Summarize(rec)
		items = append(items, Item{Summary: s, Comments: counts[s.ApplicationID]})
	}
	return Page{
		Collection: c,
		State:      state,
		Number:     page.Number,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		Label:      page.Label,
		Empty:      page.Empty,
		Buttons:    page.Buttons,
		Items:      items,
	}
}

// Detail is the JSON shape of one application with its comments.
type Detail struct {
	Collection      domain.Collection `json:"collection"`
	Application     domain.Summary    `json:"application"`
	Comments        []domain.Comment  `json:"comments"`
	DocumentsLocked bool              `json:"documentsLocked"`
}

// NewDetail builds the detail view, redacting documents unless unlocked.
func NewDetail(c domain.Collection, s domain.Summary, comments []domain.Comment, documentsUnlocked bool) Detail {
	if !documentsUnlocked {
		s = s.Redacted()
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return Detail{
		Collection:      c,
		Application:     s,
		Comments:        comments,
		DocumentsLocked: !documentsUnlocked,
	}
}
