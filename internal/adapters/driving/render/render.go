// Package render turns records and comments into markdown and terminal text.
//
// Markdown comes from the user-editable templates of a driven.TemplateStore;
// terminal output is that markdown run through glamour.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/charmbracelet/glamour"

	"github.com/custodia-labs/appreview/internal/adapters/driven/config/file"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driven"
	"github.com/custodia-labs/appreview/internal/logger"
)

// StyleAuto picks a dark or light style from the terminal background.
const StyleAuto = "auto"

// DefaultWidth is the word-wrap width used when the caller has none.
const DefaultWidth = 80

var funcs = template.FuncMap{
	"join": strings.Join,
}

// Renderer executes templates and renders markdown for the terminal.
// It is safe for concurrent use.
type Renderer struct {
	templates driven.TemplateStore
	style     string

	mu        sync.Mutex
	terminals map[int]*glamour.TermRenderer
}

// New creates a renderer. A nil store uses the built-in templates.
// An empty style means StyleAuto.
func New(templates driven.TemplateStore, style string) *Renderer {
	if style == "" {
		style = StyleAuto
	}
	return &Renderer{
		templates: templates,
		style:     style,
		terminals: make(map[int]*glamour.TermRenderer),
	}
}

// source returns the template text for name. Store errors fall back to the
// built-in template so a broken file never hides a record.
func (r *Renderer) source(name string) (string, error) {
	if r.templates != nil {
		text, err := r.templates.Load(name)
		if err == nil {
			return text, nil
		}
		logger.Warn("template %s: %v, using default", name, err)
	}
	text, ok := file.DefaultTemplate(name)
	if !ok {
		return "", fmt.Errorf("%w: template %q", domain.ErrNotFound, name)
	}
	return text, nil
}

// Markdown executes the named template against data.
func (r *Renderer) Markdown(name string, data any) (string, error) {
	text, err := r.source(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// DetailMarkdown renders a summary followed by its comments.
func (r *Renderer) DetailMarkdown(s domain.Summary, comments []domain.Comment) (string, error) {
	detail, err := r.Markdown(driven.TemplateDetail, s)
	if err != nil {
		return "", err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	thread, err := r.Markdown(driven.TemplateComments, comments)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(detail, "\n") + "\n\n" + thread, nil
}

// Terminal renders markdown for a terminal of the given width.
func (r *Renderer) Terminal(markdown string, width int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tr, err := r.terminalLocked(width)
	if err != nil {
		return "", err
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// Detail renders a summary and its comments for the terminal.
func (r *Renderer) Detail(s domain.Summary, comments []domain.Comment, width int) (string, error) {
	md, err := r.DetailMarkdown(s, comments)
	if err != nil {
		return "", err
	}
	return r.Terminal(md, width)
}

// terminalLocked returns a cached glamour renderer for width.
// The caller must hold r.mu.
func (r *Renderer) terminalLocked(width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	if tr, ok := r.terminals[width]; ok {
		return tr, nil
	}

	styleOpt := glamour.WithAutoStyle()
	if r.style != StyleAuto {
		styleOpt = glamour.WithStandardStyle(r.style)
	}
	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	r.terminals[width] = tr
	return tr, nil
}
