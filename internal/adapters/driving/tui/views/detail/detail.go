// Package detail provides the single-application view with its comments.
package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
	"github.com/custodia-labs/appreview/internal/logger"
)

// ErrNoCatalogService is returned when the view has no catalog to read from.
var ErrNoCatalogService = errors.New("detail: catalog service not available")

// View shows one application rendered from markdown, its comment thread
// and a box for adding comments.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	renderer  *render.Renderer
	viewport  viewport.Model
	input     *input.Field
	statusbar *status.Bar

	catalog  driving.CatalogService
	comments driving.CommentService
	access   driving.AccessService
	ctx      context.Context

	collection domain.Collection
	id         string
	summary    domain.Summary
	thread     []domain.Comment
	loaded     bool
	composing  bool
	err        error

	width  int
	height int
}

// NewView creates a detail view. A nil renderer uses the built-in templates.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	renderer *render.Renderer,
	catalog driving.CatalogService,
	comments driving.CommentService,
	access driving.AccessService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if renderer == nil {
		renderer = render.New(nil, "")
	}

	in := input.NewCommentInput(s)
	in.Blur()

	return &View{
		styles:    s,
		keymap:    km,
		renderer:  renderer,
		viewport:  viewport.New(80, 18),
		input:     in,
		statusbar: status.NewBar(s, km),
		catalog:   catalog,
		comments:  comments,
		access:    access,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
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

// Open starts loading an application and its comments.
func (v *View) Open(c domain.Collection, id string) tea.Cmd {
	v.collection = c
	v.id = id
	v.loaded = false
	v.composing = false
	v.err = nil
	v.input.Reset()
	v.input.Blur()
	v.statusbar.Clear()
	v.statusbar.SetContext(c.Label())
	v.statusbar.SetState(status.StateLoading)

	ctx, catalog, comments := v.ctx, v.catalog, v.comments
	return func() tea.Msg {
		if catalog == nil {
			return messages.DetailLoaded{Collection: c, ID: id, Err: ErrNoCatalogService}
		}
		summary, err := catalog.Summary(ctx, c, id)
		if err != nil {
			return messages.DetailLoaded{Collection: c, ID: id, Err: err}
		}

		var thread []domain.Comment
		if comments != nil {
			thread, err = comments.List(ctx, id)
			if err != nil {
				logger.Warn("comments for %s: %v", id, err)
			}
		}
		return messages.DetailLoaded{Collection: c, ID: id, Summary: summary, Comments: thread}
	}
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DetailLoaded:
		if msg.ID != v.id || msg.Collection != v.collection {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.summary = msg.Summary
		v.thread = msg.Comments
		v.loaded = true
		v.statusbar.SetState(status.StateDetail)
		v.statusbar.SetLabel(msg.ID)
		v.refresh()
		v.viewport.GotoTop()
		return v, nil

	case messages.CommentAdded:
		if msg.ApplicationID != v.id {
			return v, nil
		}
		if msg.Err != nil {
			v.statusbar.SetMessage("Comment not added: " + msg.Err.Error())
			return v, nil
		}
		v.thread = append(v.thread, *msg.Comment)
		v.statusbar.SetMessage("Comment added")
		v.refresh()
		v.viewport.GotoBottom()
		return v, nil

	case messages.GateResult:
		if msg.Gate == domain.GateDocuments && msg.Err == nil && v.loaded {
			v.statusbar.SetMessage("Documents unlocked")
			v.refresh()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	if v.composing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.composing {
		return v.handleComposeKey(msg)
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewBrowse} }

	case keymap.Matches(key, v.keymap.Quit):
		return v, tea.Quit

	case !v.loaded:
		return v, nil

	case keymap.Matches(key, v.keymap.Comment):
		v.composing = true
		v.statusbar.SetMessage("")
		return v, v.input.Focus()

	case keymap.Matches(key, v.keymap.Documents):
		if v.documentsOpen() {
			v.statusbar.SetMessage("Documents already unlocked")
			return v, nil
		}
		return v, func() tea.Msg { return messages.GateRequested{Gate: domain.GateDocuments} }
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *View) handleComposeKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.composing = false
		v.input.Blur()
		return v, nil
	case tea.KeyEnter:
		text := v.input.Value()
		if strings.TrimSpace(text) == "" {
			v.statusbar.SetMessage(domain.ErrEmptyComment.Error())
			return v, nil
		}
		v.composing = false
		v.input.Reset()
		v.input.Blur()
		return v, v.submit(text)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) submit(text string) tea.Cmd {
	id, ctx, comments := v.id, v.ctx, v.comments
	return func() tea.Msg {
		if comments == nil {
			return messages.CommentAdded{ApplicationID: id, Err: errors.New("comments not available")}
		}
		c, err := comments.Add(ctx, id, text)
		return messages.CommentAdded{ApplicationID: id, Comment: c, Err: err}
	}
}

func (v *View) documentsOpen() bool {
	return v.access != nil && v.access.IsUnlocked(domain.GateDocuments)
}

// refresh re-renders the markdown into the viewport.
func (v *View) refresh() {
	shown := v.summary
	if !v.documentsOpen() {
		shown = shown.Redacted()
	}

	content, err := v.renderer.Detail(shown, v.thread, v.viewport.Width)
	if err != nil {
		logger.Warn("render %s: %v", v.id, err)
		content = plain(shown, v.thread)
	}
	v.viewport.SetContent(content)
}

// plain is the fallback when markdown rendering fails.
func plain(s domain.Summary, thread []domain.Comment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", s.Title(), s.ApplicationID)
	fmt.Fprintf(&b, "Applicant: %s\nSegment: %s\nTRL: %s\nFunding: %s\nTeam size: %s\n",
		s.ApplicantName, s.Segment, s.TRL, s.Funding, s.TeamSize)
	for _, p := range s.About {
		fmt.Fprintf(&b, "\n%s\n", p)
	}
	fmt.Fprintf(&b, "\nComments (%d)\n", len(thread))
	for _, c := range thread {
		fmt.Fprintf(&b, "\n%s, %s\n%s\n", c.Reviewer, c.CreatedAt.Format("2006-01-02 15:04"), c.Text)
	}
	return b.String()
}

// View renders the detail view.
func (v *View) View() string {
	sections := make([]string, 0, 6)

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.ErrorPanel.Render("Could not open "+v.id+"\n\n"+v.err.Error()))
	case !v.loaded:
		sections = append(sections, v.styles.Muted.Render("Loading "+v.id+"..."))
	default:
		sections = append(sections, v.viewport.View())
	}

	if v.composing {
		sections = append(sections, "", v.input.View())
	}
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	v.viewport.Width = width
	v.viewport.Height = max(height-6, 3)
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	if v.loaded {
		v.refresh()
	}
}

// ID returns the open application id.
func (v *View) ID() string {
	return v.id
}

// Collection returns the collection the application belongs to.
func (v *View) Collection() domain.Collection {
	return v.collection
}

// Summary returns the loaded application.
func (v *View) Summary() domain.Summary {
	return v.summary
}

// Comments returns the loaded comment thread.
func (v *View) Comments() []domain.Comment {
	return v.thread
}

// Loaded reports whether the application has been loaded.
func (v *View) Loaded() bool {
	return v.loaded
}

// Composing reports whether the comment box has focus.
func (v *View) Composing() bool {
	return v.composing
}

// Err returns the load error, if any.
func (v *View) Err() error {
	return v.err
}

// Content returns the rendered text currently in the viewport.
func (v *View) Content() string {
	return v.viewport.View()
}

// StatusBar returns the status bar component.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}
