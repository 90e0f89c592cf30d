// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionViewMode
	SectionCommentBackend
	SectionDataset
)

// Overview rows, in display order.
const (
	itemViewMode = iota
	itemCommentBackend
	itemDataset
	itemExtendedDataset
	itemReviewer
	overviewItems
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
)

var errNoSettingsService = errors.New("settings service not available")

var viewModes = []domain.ViewMode{domain.ViewModeGrid, domain.ViewModeList}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.PortalSettings
	err      error
	notice   string

	// Navigation state
	section  Section
	selected int

	// Dataset path editing
	editing   domain.Collection
	pathInput *input.Field

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	pathInput := input.New(s, "Path: ", "path to a JSON file", 1024)
	pathInput.Blur()

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		pathInput:       pathInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: errNoSettingsService}
		}
		settings, err := svc.Get()
		if err == nil && settings.ReviewerLabel == "" {
			settings.ReviewerLabel = svc.ReviewerLabel()
		}
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		return v.saved(msg.Err, "Saved")

	case messages.ViewModeSaved:
		return v.saved(msg.Err, "Layout set to "+msg.Mode.String())

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.section == SectionDataset {
		var cmd tea.Cmd
		v.pathInput, cmd = v.pathInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) saved(err error, notice string) (*View, tea.Cmd) {
	if err != nil {
		v.err = err
		v.notice = ""
		return v, nil
	}
	v.err = nil
	v.notice = notice
	v.back()
	return v, v.loadSettings()
}

// back returns to the overview with the edited row selected.
func (v *View) back() {
	switch v.section {
	case SectionViewMode:
		v.selected = itemViewMode
	case SectionCommentBackend:
		v.selected = itemCommentBackend
	case SectionDataset:
		v.selected = itemDataset
		if v.editing == domain.CollectionAll {
			v.selected = itemExtendedDataset
		}
		v.pathInput.Reset()
		v.pathInput.Blur()
	case SectionOverview:
	}
	v.section = SectionOverview
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Global escape to go back
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.back()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionViewMode:
		return v.handleChoiceKeys(msg, len(viewModes), func(i int) tea.Cmd {
			return v.setViewMode(viewModes[i])
		})
	case SectionCommentBackend:
		backends := domain.AllCommentBackends()
		return v.handleChoiceKeys(msg, len(backends), func(i int) tea.Cmd {
			return v.setCommentBackend(backends[i])
		})
	case SectionDataset:
		return v.handleDatasetKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < overviewItems-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		v.notice = ""
		switch v.selected {
		case itemViewMode:
			v.section = SectionViewMode
			v.selected = indexOf(viewModes, v.settings.ViewMode)
		case itemCommentBackend:
			v.section = SectionCommentBackend
			v.selected = indexOf(domain.AllCommentBackends(), v.settings.CommentBackend)
		case itemDataset:
			return v, v.editDataset(domain.CollectionShortlisted, v.settings.Dataset.Path)
		case itemExtendedDataset:
			return v, v.editDataset(domain.CollectionAll, v.settings.Dataset.ExtendedPath)
		}
	}
	return v, nil
}

func (v *View) handleChoiceKeys(msg tea.KeyMsg, n int, choose func(int) tea.Cmd) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < n-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < n {
			return v, choose(v.selected)
		}
	}
	return v, nil
}

func (v *View) editDataset(c domain.Collection, current string) tea.Cmd {
	v.section = SectionDataset
	v.editing = c
	v.pathInput.SetValue(current)
	return v.pathInput.Focus()
}

func (v *View) handleDatasetKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		return v, v.setDatasetPath(v.editing, strings.TrimSpace(v.pathInput.Value()))
	}
	var cmd tea.Cmd
	v.pathInput, cmd = v.pathInput.Update(msg)
	return v, cmd
}

// Commands to update settings.

func (v *View) setViewMode(mode domain.ViewMode) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.ViewModeSaved{Mode: mode, Err: errNoSettingsService}
		}
		return messages.ViewModeSaved{Mode: mode, Err: svc.SetViewMode(mode)}
	}
}

func (v *View) setCommentBackend(backend domain.CommentBackend) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.SetCommentBackend(backend)}
	}
}

func (v *View) setDatasetPath(c domain.Collection, path string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.SetDatasetPath(c, path)}
	}
}

func indexOf[T comparable](values []T, current T) int {
	for i, value := range values {
		if value == current {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	} else if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionViewMode:
		b.WriteString(renderChoices(v, "Select Layout", viewModes, v.settings.ViewMode, func(m domain.ViewMode) string {
			return m.String()
		}))
	case SectionCommentBackend:
		b.WriteString(renderChoices(v, "Select Comment Storage", domain.AllCommentBackends(), v.settings.CommentBackend,
			func(c domain.CommentBackend) string { return c.Description() }))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Takes effect the next time appreview starts."))
		b.WriteString("\n")
	case SectionDataset:
		b.WriteString(v.styles.Subtitle.Render("Dataset for " + v.editing.Label()))
		b.WriteString("\n\n")
		b.WriteString(v.pathInput.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	items := []struct {
		label string
		value string
	}{
		itemViewMode:        {"Layout", v.settings.ViewMode.String()},
		itemCommentBackend:  {"Comment storage", v.settings.CommentBackend.Description()},
		itemDataset:         {"Shortlisted dataset", datasetLabel(v.settings.Dataset.Path, v.settings.Dataset.URL)},
		itemExtendedDataset: {"All-applications dataset", datasetLabel(v.settings.Dataset.ExtendedPath, v.settings.Dataset.ExtendedURL)},
		itemReviewer:        {"Reviewer", v.settings.ReviewerLabel},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func datasetLabel(path, url string) string {
	if url != "" {
		return url
	}
	return path
}

// renderChoices lists values with the cursor and the current value marked.
func renderChoices[T comparable](v *View, title string, values []T, current T, label func(T) string) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")

	for i, value := range values {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		suffix := ""
		if value == current {
			suffix = v.styles.Success.Render(" (current)")
		}

		line := indicator + label(value) + suffix
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionViewMode, SectionCommentBackend:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionDataset:
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.pathInput.SetWidth(width)
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.err = nil
	v.notice = ""
	v.pathInput.Reset()
	v.pathInput.Blur()
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Selected returns the selected row of the active section.
func (v *View) Selected() int {
	return v.selected
}

// Settings returns the last loaded settings.
func (v *View) Settings() *domain.PortalSettings {
	return v.settings
}

// Err returns the last load or save error.
func (v *View) Err() error {
	return v.err
}
