// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateEmpty   State = "empty"
	StateDetail  State = "detail"
	StateHelp    State = "help"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	context string
	message string
	label   string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the context and state.
func (s *Bar) renderLeft() string {
	prefix := ""
	if s.context != "" {
		prefix = s.styles.Subtitle.Render(s.context) + " "
	}

	switch s.state {
	case StateLoading:
		return prefix + s.styles.Muted.Render("Loading...")
	case StateError:
		if s.message != "" {
			return prefix + s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return prefix + s.styles.Error.Render("Error")
	case StateEmpty:
		return prefix + s.styles.Warning.Render("No matches")
	case StateHelp:
		return prefix + s.styles.Normal.Render("Help")
	case StateDetail, StateReady:
		text := s.label
		if s.message != "" {
			text = s.message
		}
		if text != "" {
			return prefix + s.styles.Normal.Render(text)
		}
	}
	return prefix + s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding

	switch {
	case s.state == StateDetail:
		bindings = s.keymap.DetailHelp()
	case s.state == StateReady && s.label != "":
		bindings = s.keymap.BrowseHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetContext sets the prefix naming what is being shown.
func (s *Bar) SetContext(context string) {
	s.context = context
}

// Context returns the current prefix.
func (s *Bar) Context() string {
	return s.context
}

// SetMessage sets a transient message shown instead of the label.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetLabel sets the page range label.
func (s *Bar) SetLabel(label string) {
	s.label = label
}

// Label returns the page range label.
func (s *Bar) Label() string {
	return s.label
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state. The context is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.label = ""
}
