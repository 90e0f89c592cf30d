package domain

import (
	"fmt"
	"strings"
	"time"
)

// LoadWaitTimeout bounds how long a deep link waits for the collection.
const LoadWaitTimeout = 5 * time.Second

// Collection names one of the two datasets.
type Collection string

// Available collections.
const (
	// CollectionShortlisted is the default summarized collection served at "/".
	CollectionShortlisted Collection = "shortlisted"

	// CollectionAll is the extended collection served at "/allapplications".
	// It sits behind GateExtended.
	CollectionAll Collection = "all"
)

// ParseCollection converts a collection name. Empty means shortlisted.
func ParseCollection(s string) (Collection, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CollectionShortlisted, nil
	}
	c := Collection(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown collection %q", ErrInvalidInput, s)
	}
	return c, nil
}

// IsValid returns true if the collection is recognised.
func (c Collection) IsValid() bool {
	return c == CollectionShortlisted || c == CollectionAll
}

// AllCollections returns both collections, shortlisted first.
func AllCollections() []Collection {
	return []Collection{CollectionShortlisted, CollectionAll}
}

// Gate returns the gate guarding the collection, if any.
func (c Collection) Gate() (Gate, bool) {
	if c == CollectionAll {
		return GateExtended, true
	}
	return "", false
}

// String returns the string representation.
func (c Collection) String() string {
	return string(c)
}

// Label returns a human-readable collection name.
func (c Collection) Label() string {
	switch c {
	case CollectionShortlisted:
		return "Shortlisted applications"
	case CollectionAll:
		return "All applications"
	default:
		return string(c)
	}
}

// LoadState is the lifecycle of a collection load.
type LoadState int

// Load states.
const (
	LoadIdle LoadState = iota
	LoadLoading
	LoadReady
	LoadFailed
)

// String returns the string representation.
func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "idle"
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return unknownDescription
	}
}

// LoadStatus reports the state of one collection.
type LoadStatus struct {
	Collection Collection `json:"collection"`
	State      LoadState  `json:"-"`
	StateName  string     `json:"state"`
	Count      int        `json:"count"`
	Skipped    int        `json:"skipped"`
	Source     string     `json:"source,omitempty"`
	Err        error      `json:"-"`
	LoadedAt   time.Time  `json:"loadedAt,omitzero"`
}
