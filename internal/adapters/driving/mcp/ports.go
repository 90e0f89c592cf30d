package mcp

import (
	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Catalog loads collections and answers browse requests.
	Catalog driving.CatalogService

	// Comment reads and appends reviewer comments.
	Comment driving.CommentService

	// Access checks gate passwords. Without it gated content stays closed.
	Access driving.AccessService

	// Renderer builds the markdown detail. Optional.
	Renderer *render.Renderer
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Comment == nil {
		return ErrMissingCommentService
	}
	return nil
}
