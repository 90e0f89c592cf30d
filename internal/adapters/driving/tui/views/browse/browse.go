// Package browse provides the filterable list of applications.
package browse

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/components/facets"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/components/pager"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
	"github.com/custodia-labs/appreview/internal/logger"
)

// ErrNoCatalogService is returned when the view has no catalog to browse.
var ErrNoCatalogService = errors.New("browse: catalog service not available")

// focus is the part of the view receiving keys.
type focus int

const (
	focusList focus = iota
	focusSearch
	focusFilters
)

// View is the browse view: search box, facet picker, sort, the page of
// applications and the pagination strip.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.RecordList
	picker    *facets.Picker
	statusbar *status.Bar

	catalog  driving.CatalogService
	comments driving.CommentService
	settings driving.SettingsService
	ctx      context.Context

	collection domain.Collection
	state      domain.ViewState
	page       domain.Page
	loadErr    error
	loading    bool
	seq        int
	focus      focus

	// notice survives page loads until the next key press.
	notice string

	width  int
	height int
	ready  bool
}

// NewView creates a browse view over the shortlisted collection.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	catalog driving.CatalogService,
	comments driving.CommentService,
	settings driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	mode := domain.ViewModeGrid
	if settings != nil {
		if cfg, err := settings.Get(); err == nil {
			mode = cfg.ViewMode
		}
	}

	in := input.NewSearchInput(s)
	in.Blur()

	v := &View{
		styles:     s,
		keymap:     km,
		input:      in,
		list:       list.NewRecordList(s),
		picker:     facets.NewPicker(s),
		statusbar:  status.NewBar(s, km),
		catalog:    catalog,
		comments:   comments,
		settings:   settings,
		ctx:        context.Background(),
		collection: domain.CollectionShortlisted,
		state:      domain.NewViewState(mode),
		width:      80,
		height:     24,
	}
	v.list.SetMode(v.state.Mode)
	v.statusbar.SetContext(v.collection.Label())
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetCollection switches to another collection with a fresh view state.
// The layout is kept.
func (v *View) SetCollection(c domain.Collection) {
	v.collection = c
	v.state = domain.NewViewState(v.state.Mode)
	v.page = domain.Page{}
	v.loadErr = nil
	v.focus = focusList
	v.input.Reset()
	v.input.Blur()
	v.picker.Close()
	v.picker.SetFilter(v.state.Filter)
	v.picker.SetOptions(nil)
	v.list.SetRecords(nil, nil)
	v.statusbar.Clear()
	v.statusbar.SetContext(c.Label())
}

// Notify shows a status message that stays until the next key press.
func (v *View) Notify(message string) {
	v.notice = message
	v.statusbar.SetMessage(message)
}

// Load fetches the current collection and reports CollectionLoaded.
func (v *View) Load() tea.Cmd {
	v.loading = true
	v.loadErr = nil
	v.statusbar.SetState(status.StateLoading)

	c, ctx, catalog := v.collection, v.ctx, v.catalog
	return func() tea.Msg {
		if catalog == nil {
			return messages.CollectionLoaded{Collection: c, Err: ErrNoCatalogService}
		}
		st, err := catalog.Load(ctx, c)
		return messages.CollectionLoaded{Collection: c, Status: st, Err: err}
	}
}

// Activate shows the current collection, loading it first if needed.
func (v *View) Activate() tea.Cmd {
	if v.catalog == nil {
		return v.Load()
	}
	switch v.catalog.Status(v.collection).State {
	case domain.LoadReady:
		v.loading = false
		return tea.Batch(v.Refresh(), v.fetchFacets())
	case domain.LoadLoading:
		v.loading = true
		v.statusbar.SetState(status.StateLoading)
		return nil
	case domain.LoadIdle, domain.LoadFailed:
		return v.Load()
	}
	return v.Load()
}

// Refresh runs the pipeline for the current state and reports PageLoaded.
func (v *View) Refresh() tea.Cmd {
	v.seq++
	seq, c, state, ctx := v.seq, v.collection, v.state, v.ctx
	catalog, comments := v.catalog, v.comments

	return func() tea.Msg {
		if catalog == nil {
			return messages.PageLoaded{Collection: c, Seq: seq, State: state, Err: ErrNoCatalogService}
		}
		page, err := catalog.Browse(ctx, c, state)
		if err != nil {
			return messages.PageLoaded{Collection: c, Seq: seq, State: state, Err: err}
		}

		var counts map[string]int
		if comments != nil {
			counts, err = comments.Counts(ctx)
			if err != nil {
				logger.Warn("comment counts: %v", err)
			}
		}
		return messages.PageLoaded{Collection: c, Seq: seq, State: state, Page: page, Counts: counts}
	}
}

func (v *View) fetchFacets() tea.Cmd {
	c, ctx, catalog := v.collection, v.ctx, v.catalog
	return func() tea.Msg {
		if catalog == nil {
			return messages.FacetsLoaded{Collection: c, Err: ErrNoCatalogService}
		}
		opts, err := catalog.Facets(ctx, c)
		return messages.FacetsLoaded{Collection: c, Options: opts, Err: err}
	}
}

// apply moves to a new state and fetches its page.
func (v *View) apply(next domain.ViewState) tea.Cmd {
	v.state = next
	v.picker.SetFilter(next.Filter)
	return v.Refresh()
}

// Update handles messages for the browse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CollectionLoaded:
		if msg.Collection != v.collection {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.setLoadErr(msg.Err)
			return v, nil
		}
		v.loadErr = nil
		return v, tea.Batch(v.Refresh(), v.fetchFacets())

	case messages.PageLoaded:
		v.handlePageLoaded(msg)
		return v, nil

	case messages.FacetsLoaded:
		if msg.Collection == v.collection && msg.Err == nil {
			v.picker.SetOptions(msg.Options)
		}
		return v, nil

	case messages.ViewModeSaved:
		if msg.Err != nil {
			v.statusbar.SetMessage("View mode not saved: " + msg.Err.Error())
			return v, nil
		}
		v.setMode(msg.Mode)
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	if v.focus == focusSearch {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) setLoadErr(err error) {
	v.loadErr = err
	v.page = domain.Page{}
	v.list.SetRecords(nil, nil)
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) handlePageLoaded(msg messages.PageLoaded) {
	// A newer request is in flight or the collection changed.
	if msg.Seq != v.seq || msg.Collection != v.collection {
		return
	}
	if msg.Err != nil {
		v.setLoadErr(msg.Err)
		return
	}

	v.loadErr = nil
	v.page = msg.Page
	v.list.SetRecords(msg.Page.Items, msg.Counts)
	v.statusbar.SetMessage(v.notice)
	v.statusbar.SetLabel(msg.Page.Label)
	if msg.Page.Empty {
		v.statusbar.SetState(status.StateEmpty)
	} else {
		v.statusbar.SetState(status.StateReady)
	}
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.notice = ""
	switch v.focus {
	case focusSearch:
		return v.handleSearchKey(msg)
	case focusFilters:
		return v.handleFilterKey(msg)
	case focusList:
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }

	case keymap.Matches(key, v.keymap.Quit):
		return v, tea.Quit

	case keymap.Matches(key, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }

	case keymap.Matches(key, v.keymap.Reload):
		return v, v.Load()
	}

	// Everything else needs a loaded collection.
	if v.loading || v.loadErr != nil {
		return v, nil
	}

	switch {
	case keymap.Matches(key, v.keymap.Search):
		v.focus = focusSearch
		v.input.SetValue(v.state.Filter.Search)
		return v, v.input.Focus()

	case keymap.Matches(key, v.keymap.Filter):
		v.focus = focusFilters
		v.picker.SetFilter(v.state.Filter)
		v.picker.Open()
		return v, nil

	case keymap.Matches(key, v.keymap.Sort):
		return v, v.apply(v.state.WithSort(nextSortKey(v.state.Sort)))

	case keymap.Matches(key, v.keymap.Layout):
		return v, v.toggleMode()

	case keymap.Matches(key, v.keymap.Clear):
		v.input.Reset()
		return v, v.apply(v.state.ClearFilters())

	case keymap.Matches(key, v.keymap.NextPage):
		return v, v.goToPage(v.state.Page + 1)

	case keymap.Matches(key, v.keymap.PrevPage):
		return v, v.goToPage(v.state.Page - 1)

	case keymap.Matches(key, v.keymap.FirstPage):
		return v, v.goToPage(1)

	case keymap.Matches(key, v.keymap.LastPage):
		return v, v.goToPage(v.page.TotalPages)

	case keymap.Matches(key, v.keymap.Select):
		id := v.list.SelectedID()
		if id == "" {
			return v, nil
		}
		c := v.collection
		return v, func() tea.Msg { return messages.RecordSelected{Collection: c, ID: id} }
	}

	// Digits jump straight to a page button.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return v, v.goToPage(int(key[0] - '0'))
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// goToPage moves to page p; pages outside the range are ignored.
func (v *View) goToPage(p int) tea.Cmd {
	next := v.state.GoToPage(p, v.page.TotalPages)
	if next.Page == v.state.Page {
		return nil
	}
	return v.apply(next)
}

func (v *View) handleSearchKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.focus = focusList
		v.input.SetValue(v.state.Filter.Search)
		v.input.Blur()
		return v, nil
	case tea.KeyEnter:
		v.focus = focusList
		v.input.Blur()
		return v, v.apply(v.state.WithSearch(v.input.Value()))
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back), keymap.Matches(key, v.keymap.Filter):
		v.focus = focusList
		v.picker.Close()
		return v, nil
	case keymap.Matches(key, v.keymap.Up):
		v.picker.MoveUp()
		return v, nil
	case keymap.Matches(key, v.keymap.Down):
		v.picker.MoveDown()
		return v, nil
	case keymap.Matches(key, v.keymap.Toggle):
		opt, ok := v.picker.Current()
		if !ok {
			return v, nil
		}
		return v, v.apply(v.state.ToggleFacet(opt.Facet, opt.Value))
	case keymap.Matches(key, v.keymap.Clear):
		v.input.Reset()
		return v, v.apply(v.state.ClearFilters())
	}
	return v, nil
}

// toggleMode flips grid/list at once and persists the choice.
func (v *View) toggleMode() tea.Cmd {
	mode := v.state.Mode.Toggle()
	v.setMode(mode)

	settings := v.settings
	if settings == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.ViewModeSaved{Mode: mode, Err: settings.SetViewMode(mode)}
	}
}

func (v *View) setMode(mode domain.ViewMode) {
	v.state = v.state.WithMode(mode)
	v.list.SetMode(v.state.Mode)
}

// nextSortKey cycles through the sort keys, wrapping to no sort.
func nextSortKey(current domain.SortKey) domain.SortKey {
	keys := domain.AllSortKeys()
	i := slices.Index(keys, current)
	return keys[(i+1)%len(keys)]
}

// View renders the browse view.
func (v *View) View() string {
	sections := make([]string, 0, 12)

	title := v.styles.Title.Render(v.collection.Label())
	meta := v.styles.Muted.Render(fmt.Sprintf("  sort: %s · layout: %s",
		v.state.Sort.Description(), v.state.Mode))
	sections = append(sections, title+meta, "", v.input.View())

	if summary := filterSummary(v.state.Filter); summary != "" {
		sections = append(sections, v.styles.Muted.Render("Filters: "+summary))
	}
	sections = append(sections, "")

	body := v.viewBody()
	if v.picker.Visible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", v.picker.View())
	}
	sections = append(sections, body, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) viewBody() string {
	switch {
	case v.loading:
		return v.styles.Muted.Render("Loading applications...")
	case v.loadErr != nil:
		return v.styles.ErrorPanel.Render(
			"Could not load applications\n\n" + v.loadErr.Error() + "\n\n[r] retry  [esc] menu",
		)
	case v.page.Empty:
		return v.styles.Warning.Render(domain.EmptyMessage) + "\n\n" +
			v.styles.Help.Render("[x] clear filters")
	}
	return v.list.View() + "\n\n" + pager.View(v.styles, v.page)
}

// filterSummary describes the active search and facet selection.
func filterSummary(f domain.FilterState) string {
	var parts []string
	if s := strings.TrimSpace(f.Search); s != "" {
		parts = append(parts, fmt.Sprintf("%q", s))
	}
	for _, facet := range domain.AllFacets() {
		if selected := f.Selected(facet); len(selected) > 0 {
			parts = append(parts, facet.Label()+": "+strings.Join(selected, ", "))
		}
	}
	return strings.Join(parts, "; ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.picker.SetHeight(height - 8)
	v.statusbar.SetWidth(width)
}

// Collection returns the collection being browsed.
func (v *View) Collection() domain.Collection {
	return v.collection
}

// State returns the current view state.
func (v *View) State() domain.ViewState {
	return v.state
}

// Page returns the visible page.
func (v *View) Page() domain.Page {
	return v.page
}

// LoadErr returns the load failure shown in the error panel, if any.
func (v *View) LoadErr() error {
	return v.loadErr
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// SearchFocused returns whether the search box has focus.
func (v *View) SearchFocused() bool {
	return v.focus == focusSearch
}

// FiltersOpen returns whether the facet picker is shown.
func (v *View) FiltersOpen() bool {
	return v.focus == focusFilters
}

// List returns the record list component.
func (v *View) List() *list.RecordList {
	return v.list
}

// StatusBar returns the status bar component.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}
