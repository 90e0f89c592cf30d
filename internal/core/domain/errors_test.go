package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrDatasetUnavailable", ErrDatasetUnavailable},
		{"ErrDatasetNotLoaded", ErrDatasetNotLoaded},
		{"ErrLoadTimeout", ErrLoadTimeout},
		{"ErrMissingApplicationID", ErrMissingApplicationID},
		{"ErrUnknownSortKey", ErrUnknownSortKey},
		{"ErrUnknownFacet", ErrUnknownFacet},
		{"ErrUnknownViewMode", ErrUnknownViewMode},
		{"ErrEmptyComment", ErrEmptyComment},
		{"ErrStorageCorrupt", ErrStorageCorrupt},
		{"ErrAccessDenied", ErrAccessDenied},
		{"ErrUnknownGate", ErrUnknownGate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound tests ErrNotFound error
func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrAccessDenied))
}

// TestErrors_Wrapped tests sentinel matching through wrapping
func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("load shortlisted: %w", ErrDatasetUnavailable)
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
	assert.NotErrorIs(t, err, ErrDatasetNotLoaded)
}

// TestErrors_Unique tests that no two sentinels share a message
func TestErrors_Unique(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrNotImplemented, ErrDatasetUnavailable,
		ErrDatasetNotLoaded, ErrLoadTimeout, ErrMissingApplicationID,
		ErrUnknownSortKey, ErrUnknownFacet, ErrUnknownViewMode, ErrEmptyComment,
		ErrStorageCorrupt, ErrAccessDenied, ErrUnknownGate,
	}
	seen := make(map[string]bool)
	for _, err := range all {
		assert.False(t, seen[err.Error()], "duplicate message %q", err.Error())
		seen[err.Error()] = true
	}
}
