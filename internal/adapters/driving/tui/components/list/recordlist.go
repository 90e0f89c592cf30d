// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/pipeline"
)

// RecordList displays one page of applications as a grid of cards or a
// list of rows.
type RecordList struct {
	summaries []domain.Summary
	counts    map[string]int
	mode      domain.ViewMode
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewRecordList creates a new record list component.
func NewRecordList(s *styles.Styles) *RecordList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RecordList{
		mode:   domain.ViewModeGrid,
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the record list.
func (r *RecordList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *RecordList) Update(msg tea.Msg) (*RecordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "left", "h":
			r.MoveLeft()
		case "right", "l":
			r.MoveRight()
		}
	}
	return r, nil
}

// View renders the page.
func (r *RecordList) View() string {
	if len(r.summaries) == 0 {
		return ""
	}
	if r.mode == domain.ViewModeList {
		return r.viewList()
	}
	return r.viewGrid()
}

func (r *RecordList) viewList() string {
	lines := make([]string, 0, len(r.summaries))
	for i := range r.summaries {
		lines = append(lines, r.renderRow(i, &r.summaries[i]))
	}
	return strings.Join(lines, "\n")
}

// renderRow formats one application on a single line.
func (r *RecordList) renderRow(index int, s *domain.Summary) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	maxTitleLen := max(r.width/3, 12)
	title := truncate(s.Title(), maxTitleLen)
	detail := fmt.Sprintf("%s · %s · %s · Funded: %s", s.ApplicantName, s.Segment, s.TRL, s.FundingStatus)
	detail = truncate(detail, max(r.width-maxTitleLen-12, 10))

	badge := r.commentBadge(s.ApplicationID)

	if index == r.selected {
		return r.styles.Selected.Render(fmt.Sprintf("%s%-*s", indicator, maxTitleLen, title)) +
			"  " + r.styles.Normal.Render(detail) + badge
	}
	return r.styles.Normal.Render(fmt.Sprintf("%s%-*s", indicator, maxTitleLen, title)) +
		"  " + r.styles.Muted.Render(detail) + badge
}

func (r *RecordList) viewGrid() string {
	cols := r.Columns()
	rows := make([]string, 0, (len(r.summaries)+cols-1)/cols)
	for start := 0; start < len(r.summaries); start += cols {
		end := min(start+cols, len(r.summaries))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, r.renderCard(i, &r.summaries[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard formats one application as a bordered card.
func (r *RecordList) renderCard(index int, s *domain.Summary) string {
	inner := styles.CardWidth - 4

	lines := []string{
		r.styles.Title.Render(truncate(s.Title(), inner)),
		r.styles.Muted.Render(truncate(s.ApplicationID, inner)),
		r.styles.Normal.Render(truncate(s.ApplicantName, inner)),
		r.styles.Normal.Render(truncate(s.Segment+" · "+s.TRL, inner)),
		r.styles.Normal.Render(truncate("Funding: "+s.Funding, inner)),
		r.styles.Muted.Render(truncate(strings.Join(s.Recognition, ", "), inner)) + r.commentBadge(s.ApplicationID),
	}

	style := r.styles.Card
	if index == r.selected {
		style = r.styles.CardSelected
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (r *RecordList) commentBadge(id string) string {
	n := r.counts[id]
	if n == 0 {
		return ""
	}
	return " " + r.styles.Subtitle.Render(fmt.Sprintf("✎ %d", n))
}

// truncate shortens s to n runes, ending with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// SetRecords replaces the page. Selection returns to the first record.
func (r *RecordList) SetRecords(records []domain.Record, counts map[string]int) {
	r.summaries = make([]domain.Summary, len(records))
	for i, rec := range records {
		r.summaries[i] = pipeline.Summarize(rec)
	}
	r.counts = counts
	r.selected = 0
}

// Summaries returns the summaries of the current page.
func (r *RecordList) Summaries() []domain.Summary {
	return r.summaries
}

// SetMode switches between grid and list layout.
func (r *RecordList) SetMode(mode domain.ViewMode) {
	if mode.IsValid() {
		r.mode = mode
	}
}

// Mode returns the current layout.
func (r *RecordList) Mode() domain.ViewMode {
	return r.mode
}

// Columns returns the number of cards per grid row. List layout has one.
func (r *RecordList) Columns() int {
	if r.mode == domain.ViewModeList {
		return 1
	}
	return max(r.width/styles.CardWidth, 1)
}

// Selected returns the index of the selected record.
func (r *RecordList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RecordList) SetSelected(index int) {
	if index >= 0 && index < len(r.summaries) {
		r.selected = index
	}
}

// SelectedID returns the ApplicationId of the selected record, or "" if none.
func (r *RecordList) SelectedID() string {
	if r.selected < 0 || r.selected >= len(r.summaries) {
		return ""
	}
	return r.summaries[r.selected].ApplicationID
}

// MoveUp moves selection one row up.
func (r *RecordList) MoveUp() {
	r.SetSelected(r.selected - r.Columns())
}

// MoveDown moves selection one row down.
func (r *RecordList) MoveDown() {
	r.SetSelected(r.selected + r.Columns())
}

// MoveLeft moves selection to the previous record.
func (r *RecordList) MoveLeft() {
	r.SetSelected(r.selected - 1)
}

// MoveRight moves selection to the next record.
func (r *RecordList) MoveRight() {
	r.SetSelected(r.selected + 1)
}

// SetDimensions sets the component dimensions.
func (r *RecordList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *RecordList) Width() int {
	return r.width
}

// Count returns the number of records on the page.
func (r *RecordList) Count() int {
	return len(r.summaries)
}

// IsEmpty returns whether the page is empty.
func (r *RecordList) IsEmpty() bool {
	return len(r.summaries) == 0
}
