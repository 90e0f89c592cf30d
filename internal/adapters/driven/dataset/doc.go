// Package dataset provides the driven.DatasetSource adapter that reads the
// application collections from local JSON files or over plain HTTP GET.
//
// Every payload is sanitised (bare NaN and Infinity tokens become null) and
// validated against an embedded JSON Schema before it is decoded. Any
// failure is reported wrapped in domain.ErrDatasetUnavailable.
package dataset
