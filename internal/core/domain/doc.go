// Package domain defines the core business entities for appreview.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: an application in either the legacy or the summarized shape
//   - FilterState, SortKey, ViewState: the browse state and its transitions
//   - Page: one slice of a filtered, sorted collection
//   - Comment: a reviewer note attached to an application
//   - PortalSettings: persisted preferences and dataset locations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
