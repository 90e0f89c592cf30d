package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/views/browse"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/views/gate"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	browseView   *browse.View
	detailView   *detail.View
	menuView     *menu.View
	gateView     *gate.View
	settingsView *settings.View

	// currentView tracks which view is active; previousView is where the
	// gate and help views return to.
	currentView  messages.ViewType
	previousView messages.ViewType

	// collection is the collection being browsed.
	collection domain.Collection

	// openID is a deep-linked application waiting for its collection.
	openID string

	// lastRendered is the application the detail view was last opened for.
	// Both deep-link paths check it so a record is never opened twice.
	lastRendered string

	// pendingNext is sent once the prompted gate opens.
	pendingNext any

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// It starts on the shortlisted collection.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	browseView := browse.NewView(s, km, ports.Catalog, ports.Comment, ports.Settings)
	browseView.SetCollection(domain.CollectionShortlisted)

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		browseView:   browseView,
		detailView:   detail.NewView(s, km, ports.Renderer, ports.Catalog, ports.Comment, ports.Access),
		menuView:     menu.NewView(s, ports.Access),
		gateView:     gate.NewView(s, ports.Access),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewBrowse,
		previousView: messages.ViewBrowse,
		collection:   domain.CollectionShortlisted,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.browseView.WithContext(ctx)
	a.detailView.WithContext(ctx)
	return a
}

// Open deep-links to an application of the shortlisted collection. The
// detail view opens as soon as the collection has loaded.
func (a *App) Open(id string) *App {
	a.openID = strings.TrimSpace(id)
	return a
}

// Init implements tea.Model.
// It starts loading the first collection and resolves any deep link.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("appreview"),
		a.browseView.Load(),
		a.resolveDeepLink(),
	)
}

// resolveDeepLink waits for the collection and checks the pending id.
func (a *App) resolveDeepLink() tea.Cmd {
	if a.openID == "" {
		return nil
	}
	ctx, catalog, c, id := a.ctx, a.ports.Catalog, a.collection, a.openID
	return func() tea.Msg {
		if err := catalog.WaitLoaded(ctx, c); err != nil {
			return messages.DeepLinkResolved{Collection: c, ID: id, Err: err}
		}
		_, err := catalog.Get(ctx, c, id)
		return messages.DeepLinkResolved{Collection: c, ID: id, Err: err}
	}
}

// openDetail switches to the detail view unless it already shows id.
func (a *App) openDetail(c domain.Collection, id string) tea.Cmd {
	a.openID = ""
	if a.currentView == messages.ViewDetail && a.lastRendered == id {
		return nil
	}
	a.currentView = messages.ViewDetail
	a.lastRendered = id
	return a.detailView.Open(c, id)
}

func deepLinkMessage(id string, err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return "Application " + id + " not found"
	}
	return "Could not open " + id + ": " + err.Error()
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.CollectionRequested:
		if g, gated := msg.Collection.Gate(); gated && !a.ports.Access.IsUnlocked(g) {
			next := msg
			return a, func() tea.Msg { return messages.GateRequested{Gate: g, Next: next} }
		}
		if msg.Collection != a.collection {
			a.collection = msg.Collection
			a.browseView.SetCollection(msg.Collection)
		}
		a.currentView = messages.ViewBrowse
		return a, a.browseView.Activate()

	case messages.GateRequested:
		if a.currentView != messages.ViewGate {
			a.previousView = a.currentView
		}
		a.pendingNext = msg.Next
		a.currentView = messages.ViewGate
		return a, a.gateView.Prompt(msg.Gate)

	case messages.GateResult:
		a.currentView = a.previousView
		next := a.pendingNext
		a.pendingNext = nil

		a.detailView, cmd = a.detailView.Update(msg)
		if msg.Err != nil {
			if !errors.Is(msg.Err, gate.ErrCancelled) {
				a.err = msg.Err
			}
			return a, cmd
		}
		if next != nil {
			return a, tea.Batch(cmd, func() tea.Msg { return next })
		}
		return a, cmd

	case messages.CollectionLoaded:
		a.browseView, cmd = a.browseView.Update(msg)
		if a.openID == "" || msg.Collection != a.collection || msg.Err != nil {
			return a, cmd
		}
		if _, err := a.ports.Catalog.Get(a.ctx, msg.Collection, a.openID); err != nil {
			// DeepLinkResolved reports the miss.
			return a, cmd
		}
		return a, tea.Batch(cmd, a.openDetail(msg.Collection, a.openID))

	case messages.DeepLinkResolved:
		if msg.Err != nil {
			logger.Warn("open %s: %v", msg.ID, msg.Err)
			if a.openID == msg.ID {
				a.openID = ""
				a.browseView.Notify(deepLinkMessage(msg.ID, msg.Err))
			}
			return a, nil
		}
		// Already opened when the collection finished loading.
		if a.openID != msg.ID {
			return a, nil
		}
		return a, a.openDetail(msg.Collection, msg.ID)

	case messages.RecordSelected:
		return a, a.openDetail(msg.Collection, msg.ID)

	case messages.PageLoaded, messages.FacetsLoaded:
		a.browseView, cmd = a.browseView.Update(msg)
		return a, cmd

	case messages.ViewModeSaved:
		var settingsCmd tea.Cmd
		a.browseView, cmd = a.browseView.Update(msg)
		a.settingsView, settingsCmd = a.settingsView.Update(msg)
		return a, tea.Batch(cmd, settingsCmd)

	case messages.DetailLoaded, messages.CommentAdded:
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.updateCurrent(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	// Everything else (cursor blinks, viewport scrolling) goes to the
	// active view.
	return a, a.updateCurrent(msg)
}

// switchView activates a view.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	if view == messages.ViewHelp && a.currentView != messages.ViewHelp {
		a.previousView = a.currentView
	}
	a.currentView = view

	switch view {
	case messages.ViewBrowse:
		return a.browseView.Activate()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewHelp, messages.ViewDetail, messages.ViewGate:
		// No initialisation needed.
	}
	return nil
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewBrowse:
		a.browseView, cmd = a.browseView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewGate:
		a.gateView, cmd = a.gateView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch {
			case keymap.Matches(key.String(), a.keymap.Back), keymap.Matches(key.String(), a.keymap.Help):
				return a.switchView(a.previousView)
			case keymap.Matches(key.String(), a.keymap.Quit):
				return tea.Quit
			}
		}
	}
	return cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewBrowse:
		return a.browseView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewGate:
		return a.gateView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.browseView.View()
	}
}

// viewHelp renders the help view from the key bindings.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n")

	for _, group := range a.keymap.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Collection returns the collection being browsed.
func (a *App) Collection() domain.Collection {
	return a.collection
}

// PendingOpen returns the deep-linked id that has not been opened yet.
func (a *App) PendingOpen() string {
	return a.openID
}

// Browse returns the browse view.
func (a *App) Browse() *browse.View {
	return a.browseView
}

// Detail returns the detail view.
func (a *App) Detail() *detail.View {
	return a.detailView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and sizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.browseView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.menuView.SetDimensions(width, height)
	a.gateView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
