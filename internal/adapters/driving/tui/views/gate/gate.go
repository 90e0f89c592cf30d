// Package gate provides the password prompt in front of protected content.
package gate

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
	"github.com/custodia-labs/appreview/internal/logger"
)

// ErrCancelled is reported when the prompt is dismissed without a password.
var ErrCancelled = errors.New("password prompt cancelled")

// WrongPassword is shown after a rejected attempt.
const WrongPassword = "Wrong password"

// View asks for the password of one gate.
type View struct {
	styles *styles.Styles
	access driving.AccessService
	input  *input.Field

	gate     domain.Gate
	message  string
	attempts int

	width  int
	height int
}

// NewView creates a gate view.
func NewView(s *styles.Styles, access driving.AccessService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		access: access,
		input:  input.NewPasswordInput(s, "Password"),
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Prompt resets the view for a gate and focuses the password field.
func (v *View) Prompt(gate domain.Gate) tea.Cmd {
	v.gate = gate
	v.message = ""
	v.attempts = 0
	v.input = input.NewPasswordInput(v.styles, "Password")
	v.input.SetWidth(v.width)
	return v.input.Focus()
}

// Update handles messages for the gate view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyEsc:
			gate := v.gate
			v.input.Reset()
			return v, func() tea.Msg { return messages.GateResult{Gate: gate, Err: ErrCancelled} }
		case tea.KeyEnter:
			return v, v.submit()
		case tea.KeyCtrlC:
			return v, tea.Quit
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) submit() tea.Cmd {
	if v.access == nil {
		v.message = "Access control not available"
		return nil
	}

	password := v.input.Value()
	v.input.Reset()
	v.attempts++

	if err := v.access.Unlock(v.gate, password); err != nil {
		logger.Debug("unlock %s: %v", v.gate, err)
		if errors.Is(err, domain.ErrAccessDenied) {
			v.message = WrongPassword
		} else {
			v.message = err.Error()
		}
		return nil
	}

	gate := v.gate
	v.message = ""
	return func() tea.Msg { return messages.GateResult{Gate: gate} }
}

// View renders the gate view.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render(v.gate.Prompt()),
		"",
		v.input.View(),
	}
	if v.message != "" {
		sections = append(sections, "", v.styles.Error.Render(v.message))
	}
	sections = append(sections, "", v.styles.Help.Render("[enter] unlock  [esc] cancel"))

	box := v.styles.ErrorPanel.
		BorderForeground(v.styles.Title.GetForeground()).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, box)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(min(width, 60))
}

// Gate returns the gate being prompted for.
func (v *View) Gate() domain.Gate {
	return v.gate
}

// Message returns the feedback line, if any.
func (v *View) Message() string {
	return v.message
}

// Attempts returns how many passwords were submitted since Prompt.
func (v *View) Attempts() int {
	return v.attempts
}

// Value returns the typed password.
func (v *View) Value() string {
	return v.input.Value()
}
