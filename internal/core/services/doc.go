// Package services holds the portal's use cases: loading and browsing the
// application collections, reviewer comments, access gates, settings and
// the background dataset refresher.
//
// Services depend only on domain types and the driven ports, so every
// adapter (TUI, CLI, HTTP, MCP) shares the same behaviour.
package services
