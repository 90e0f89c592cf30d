package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Dataset Errors.

	// ErrDatasetUnavailable indicates the dataset could not be fetched or decoded.
	// The collection stays empty and every browse returns the empty state.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrDatasetNotLoaded indicates the collection has not finished loading.
	ErrDatasetNotLoaded = errors.New("dataset not loaded")

	// ErrLoadTimeout indicates the collection did not become ready in time.
	ErrLoadTimeout = errors.New("timed out waiting for dataset")

	// ErrMissingApplicationID indicates a record without an ApplicationId.
	ErrMissingApplicationID = errors.New("record has no ApplicationId")

	// Browse Errors.

	// ErrUnknownSortKey indicates a sort key outside the supported set.
	ErrUnknownSortKey = errors.New("unknown sort key")

	// ErrUnknownFacet indicates a facet outside the supported set.
	ErrUnknownFacet = errors.New("unknown facet")

	// ErrUnknownViewMode indicates a view mode other than grid or list.
	ErrUnknownViewMode = errors.New("unknown view mode")

	// Comment Errors.

	// ErrEmptyComment indicates comment text that is empty after trimming.
	ErrEmptyComment = errors.New("comment text is empty")

	// ErrStorageCorrupt indicates persisted state could not be decoded.
	// Callers reset to defaults; it is never fatal.
	ErrStorageCorrupt = errors.New("persisted state is corrupt")

	// Access Errors.

	// ErrAccessDenied indicates a wrong password for an access gate.
	ErrAccessDenied = errors.New("access denied")

	// ErrUnknownGate indicates an access gate that does not exist.
	ErrUnknownGate = errors.New("unknown access gate")
)
