package domain

import "fmt"

// DefaultPageSize is the number of applications shown per page.
const DefaultPageSize = 9

// ButtonWindow is the number of numbered page buttons shown around the
// current page.
const ButtonWindow = 5

// EmptyMessage is shown when no application passes the filters.
const EmptyMessage = "No applications match the current filters."

// PageButton is one entry in the pagination strip.
// An ellipsis button marks a gap and carries no page number.
type PageButton struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// String renders the button as it appears in the strip.
func (b PageButton) String() string {
	if b.Ellipsis {
		return "…"
	}
	if b.Current {
		return fmt.Sprintf("[%d]", b.Number)
	}
	return fmt.Sprintf("%d", b.Number)
}

// Page is the visible slice of a filtered and sorted collection.
type Page struct {
	// Items holds the records on this page, in display order.
	Items []Record

	// Number is the 1-based page number. Zero when Empty.
	Number int

	// TotalPages is ceil(Total / PageSize). Zero when Empty.
	TotalPages int

	// Total is the number of records that passed the filters.
	Total int

	// PageSize is the page size the slice was cut with.
	PageSize int

	// Start and End are the 1-based inclusive positions of the first and
	// last visible record. Both zero when Empty.
	Start int
	End   int

	// Label is the displayed range, e.g. "Showing 10–18 of 22".
	Label string

	// Empty is true when no record passed the filters.
	Empty bool

	// Buttons is the pagination strip.
	Buttons []PageButton
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return !p.Empty && p.Number > 1
}

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool {
	return !p.Empty && p.Number < p.TotalPages
}

// RangeLabel formats the displayed range of a page.
func RangeLabel(start, end, total int) string {
	return fmt.Sprintf("Showing %d–%d of %d", start, end, total)
}
