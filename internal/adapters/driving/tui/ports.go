// Package tui provides an interactive terminal user interface for appreview.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog loads collections and answers browse requests.
	Catalog driving.CatalogService

	// Comment reads and appends reviewer comments.
	Comment driving.CommentService

	// Access checks the password gates.
	Access driving.AccessService

	// Settings persists the view mode. Optional.
	Settings driving.SettingsService

	// Renderer turns records into terminal text. Optional; the built-in
	// templates are used when nil.
	Renderer *render.Renderer
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	catalog driving.CatalogService,
	comment driving.CommentService,
	access driving.AccessService,
) *Ports {
	return &Ports{
		Catalog: catalog,
		Comment: comment,
		Access:  access,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Comment == nil {
		return ErrMissingCommentService
	}
	if p.Access == nil {
		return ErrMissingAccessService
	}
	return nil
}
