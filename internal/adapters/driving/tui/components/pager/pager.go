// Package pager renders the pagination strip under the browse view.
package pager

import (
	"strings"

	"github.com/custodia-labs/appreview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/appreview/internal/core/domain"
)

// View renders prev/next markers around the page buttons of p.
// An empty page renders nothing.
func View(s *styles.Styles, p domain.Page) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if p.Empty || len(p.Buttons) == 0 {
		return ""
	}

	parts := make([]string, 0, len(p.Buttons)+2)
	if p.HasPrev() {
		parts = append(parts, s.Normal.Render("‹ prev"))
	} else {
		parts = append(parts, s.Muted.Render("‹ prev"))
	}

	for _, b := range p.Buttons {
		switch {
		case b.Current:
			parts = append(parts, s.PageCurrent.Render(b.String()))
		case b.Ellipsis:
			parts = append(parts, s.Muted.Render(b.String()))
		default:
			parts = append(parts, s.Normal.Render(b.String()))
		}
	}

	if p.HasNext() {
		parts = append(parts, s.Normal.Render("next ›"))
	} else {
		parts = append(parts, s.Muted.Render("next ›"))
	}

	return strings.Join(parts, " ")
}
