// Package facets provides the facet picker overlay of the browse view.
package facets

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/core/domain"
)

// Option is one selectable row of the picker.
type Option struct {
	Facet domain.Facet
	Value string
	Count int
}

// Picker lists every facet value with a checkbox. It holds no selection of
// its own; the filter passed to View decides what is ticked.
type Picker struct {
	styles   *styles.Styles
	options  []Option
	cursor   int
	visible  bool
	height   int
	selected domain.FilterState
}

// NewPicker creates a hidden picker.
func NewPicker(s *styles.Styles) *Picker {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Picker{styles: s, height: 20}
}

// SetOptions replaces the selectable values, in facet display order.
func (p *Picker) SetOptions(opts domain.FacetOptions) {
	p.options = nil
	for _, facet := range domain.AllFacets() {
		for _, v := range opts[facet] {
			p.options = append(p.options, Option{Facet: facet, Value: v.Value, Count: v.Count})
		}
	}
	if p.cursor >= len(p.options) {
		p.cursor = max(len(p.options)-1, 0)
	}
}

// Options returns the selectable values.
func (p *Picker) Options() []Option {
	return p.options
}

// Open shows the picker.
func (p *Picker) Open() {
	p.visible = true
}

// Close hides the picker.
func (p *Picker) Close() {
	p.visible = false
}

// Visible reports whether the picker is shown.
func (p *Picker) Visible() bool {
	return p.visible
}

// MoveUp moves the cursor up.
func (p *Picker) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveDown moves the cursor down.
func (p *Picker) MoveDown() {
	if p.cursor < len(p.options)-1 {
		p.cursor++
	}
}

// Cursor returns the index of the highlighted option.
func (p *Picker) Cursor() int {
	return p.cursor
}

// Current returns the highlighted option.
func (p *Picker) Current() (Option, bool) {
	if p.cursor < 0 || p.cursor >= len(p.options) {
		return Option{}, false
	}
	return p.options[p.cursor], true
}

// SetHeight limits how many rows are drawn.
func (p *Picker) SetHeight(height int) {
	p.height = height
}

// SetFilter sets the filter the checkboxes reflect.
func (p *Picker) SetFilter(f domain.FilterState) {
	p.selected = f
}

// View renders the picker.
func (p *Picker) View() string {
	if len(p.options) == 0 {
		return p.styles.Border.Render(p.styles.Muted.Render("No filter values"))
	}

	rows := max(p.height-4, 3)
	start := 0
	if p.cursor >= rows {
		start = p.cursor - rows + 1
	}
	end := min(start+rows, len(p.options))

	lines := []string{p.styles.Subtitle.Render("Filters"), ""}
	var last domain.Facet
	for i := start; i < end; i++ {
		o := p.options[i]
		if o.Facet != last {
			lines = append(lines, p.styles.Title.Render(o.Facet.Label()))
			last = o.Facet
		}

		box := "[ ]"
		if p.selected.IsSelected(o.Facet, o.Value) {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s (%d)", box, o.Value, o.Count)
		if i == p.cursor {
			lines = append(lines, p.styles.Selected.Render("> "+line))
		} else {
			lines = append(lines, p.styles.Normal.Render("  "+line))
		}
	}
	lines = append(lines, "", p.styles.Help.Render("[space] toggle  [x] clear  [esc] close"))

	return p.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}
