package tui

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("tui: catalog service is required")

// ErrMissingCommentService is returned when the comment service is not provided.
var ErrMissingCommentService = errors.New("tui: comment service is required")

// ErrMissingAccessService is returned when the access service is not provided.
var ErrMissingAccessService = errors.New("tui: access service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
