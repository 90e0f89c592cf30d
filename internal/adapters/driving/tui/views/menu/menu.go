// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
)

// Item represents a single menu option.
type Item struct {
	Label      string
	Collection domain.Collection // set for items that open a collection
	View       messages.ViewType
	Quit       bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	access   driving.AccessService
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view. access is only used to mark locked
// collections and may be nil.
func NewView(s *styles.Styles, access driving.AccessService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		access: access,
		items: []Item{
			{Label: domain.CollectionShortlisted.Label(), Collection: domain.CollectionShortlisted, View: messages.ViewBrowse},
			{Label: domain.CollectionAll.Label(), Collection: domain.CollectionAll, View: messages.ViewBrowse},
			{Label: "Settings", View: messages.ViewSettings},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			return v, v.choose(v.items[v.selected])

		case "1", "2":
			v.selected = int(msg.Runes[0] - '1')
			return v, v.choose(v.items[v.selected])

		case "q", "ctrl+c":
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	switch {
	case item.Quit:
		return tea.Quit
	case item.Collection != "":
		c := item.Collection
		return func() tea.Msg { return messages.CollectionRequested{Collection: c} }
	default:
		view := item.View
		return func() tea.Msg { return messages.ViewChanged{View: view} }
	}
}

func (v *View) locked(item Item) bool {
	if item.Collection == "" || v.access == nil {
		return false
	}
	gate, gated := item.Collection.Gate()
	return gated && !v.access.IsUnlocked(gate)
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Application Review"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Browse, filter and comment on innovation applications"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}

		label := item.Label
		if v.locked(item) {
			label += " (locked)"
		}
		b.WriteString(cursor + style.Render(label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}
