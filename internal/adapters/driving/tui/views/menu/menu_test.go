package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/services"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)

	require.NotNil(t, view)
	assert.Len(t, view.Items(), 5)
	assert.Equal(t, 0, view.Selected())
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
	assert.Nil(t, view.Init())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil, nil)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	j := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	for range 10 {
		view.Update(j)
	}
	assert.Equal(t, 4, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 3, view.Selected())

	k := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	for range 10 {
		view.Update(k)
	}
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_Select(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		want     tea.Msg
	}{
		{"shortlisted", 0, messages.CollectionRequested{Collection: domain.CollectionShortlisted}},
		{"all", 1, messages.CollectionRequested{Collection: domain.CollectionAll}},
		{"settings", 2, messages.ViewChanged{View: messages.ViewSettings}},
		{"help", 3, messages.ViewChanged{View: messages.ViewHelp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil, nil)
			view.selected = tt.selected

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestView_Update_SelectQuit(t *testing.T) {
	view := NewView(nil, nil)
	view.selected = 4

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Update_NumberShortcut(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})

	require.NotNil(t, cmd)
	assert.Equal(t, 1, view.Selected())
	assert.Equal(t, messages.CollectionRequested{Collection: domain.CollectionAll}, cmd())
}

func TestView_Update_Quit(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil)

	assert.Equal(t, "Initialising...", view.View())
}

func TestView_View_Items(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(100, 40)

	out := view.View()

	assert.Contains(t, out, "Application Review")
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "Shortlisted applications")
	assert.Contains(t, out, "All applications")
	assert.Contains(t, out, "Settings")
	assert.NotContains(t, out, "(locked)")
}

func TestView_View_LockedCollection(t *testing.T) {
	access := services.NewAccessService(services.NewSettingsService(memory.NewConfigStore()))
	view := NewView(nil, access)
	view.SetDimensions(100, 40)

	assert.Contains(t, view.View(), "All applications (locked)")

	require.NoError(t, access.Unlock(domain.GateExtended, domain.DefaultExtendedPassword))
	assert.NotContains(t, view.View(), "(locked)")
}
