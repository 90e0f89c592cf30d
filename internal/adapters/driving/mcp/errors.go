// Package mcp provides an MCP (Model Context Protocol) server adapter for appreview.
// It lets AI assistants browse applications and read or add reviewer comments.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")

// ErrMissingCommentService is returned when the comment service is not provided.
var ErrMissingCommentService = errors.New("mcp: comment service is required")
