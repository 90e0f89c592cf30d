// Package httpapi serves the collections over HTTP.
//
// Address routes mirror the portal: "/" lists the shortlisted applications,
// "/{id}" shows one of them and "/allapplications" does the same for the
// password protected collection. Unknown ids redirect to the list. The JSON
// API lives under /api and metrics under /metrics.
package httpapi

import (
	"errors"

	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
)

var (
	// ErrMissingCatalogService is returned when the catalog service is not provided.
	ErrMissingCatalogService = errors.New("httpapi: catalog service is required")

	// ErrMissingCommentService is returned when the comment service is not provided.
	ErrMissingCommentService = errors.New("httpapi: comment service is required")

	// ErrMissingAccessService is returned when the access service is not provided.
	ErrMissingAccessService = errors.New("httpapi: access service is required")
)

// Ports aggregates the driving ports the server needs.
type Ports struct {
	Catalog driving.CatalogService
	Comment driving.CommentService
	Access  driving.AccessService

	// Renderer builds markdown responses. Optional.
	Renderer *render.Renderer
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p == nil || p.Catalog == nil:
		return ErrMissingCatalogService
	case p.Comment == nil:
		return ErrMissingCommentService
	case p.Access == nil:
		return ErrMissingAccessService
	}
	return nil
}
