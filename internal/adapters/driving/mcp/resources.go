package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for appreview resources.
	uriScheme = "appreview://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "facets",
		Name:        "facets",
		Description: "Selectable facet values of the shortlisted applications with counts",
		MIMEType:    "application/json",
	}, s.handleFacetsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "applications/{id}",
		Name:        "application",
		Description: "One shortlisted application with its reviewer comments",
		MIMEType:    "text/markdown",
	}, s.handleApplicationResource)
}

// handleFacetsResource lists facet values of the shortlisted collection.
func (s *Server) handleFacetsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	c, err := s.open(ctx, "", "")
	if err != nil {
		return nil, err
	}
	facets, err := s.ports.Catalog.Facets(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("listing facets: %w", err)
	}

	data, err := json.MarshalIndent(facets, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling facets: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleApplicationResource renders one application as markdown.
// Documents stay hidden unless the documents gate is already unlocked.
func (s *Server) handleApplicationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractApplicationID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	c, err := s.open(ctx, "", "")
	if err != nil {
		return nil, err
	}
	sum, err := s.ports.Catalog.Summary(ctx, c, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	comments, err := s.ports.Comment.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	if s.check(domain.GateDocuments, "") != nil {
		sum = sum.Redacted()
	}
	md, err := s.renderer.DetailMarkdown(sum, comments)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", id, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     md,
		}},
	}, nil
}

// extractApplicationID extracts the id from a URI like appreview://applications/{id}.
func extractApplicationID(uri string) string {
	const prefix = uriScheme + "applications/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return strings.TrimSpace(id)
}
