// Package pipeline turns a loaded collection into the visible page.
//
// Records flow through four pure stages:
//
//	records → Filter (search + facets) → Sort (optional) → Paginate → renderer
//
// The normaliser (ValueOf, Number, Display, Text) reconciles the legacy and
// summarized record shapes so the later stages see one set of logical fields.
// Values that exist only as narrative text in the summarized shape are mined
// with regular expressions; a miss silently yields the documented default
// (0 for numbers, "N/A" for display, "" for matching).
//
// Nothing in this package holds state or blocks, so every stage is safe to
// call from concurrent readers of an immutable collection.
package pipeline
