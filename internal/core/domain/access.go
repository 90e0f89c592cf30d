package domain

import (
	"fmt"
	"strings"
)

// Gate is a constant-password obstacle in front of part of the portal.
// Gates are not a security boundary.
type Gate string

// Available gates.
const (
	// GateExtended guards the collection of all applications.
	GateExtended Gate = "extended"

	// GateDocuments guards the per-record documents panel.
	GateDocuments Gate = "documents"
)

// Default gate passwords, overridable in config.
const (
	DefaultExtendedPassword  = "allapps"
	DefaultDocumentsPassword = "documents"
)

// ParseGate converts a gate name.
func ParseGate(s string) (Gate, error) {
	g := Gate(strings.ToLower(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownGate, s)
	}
	return g, nil
}

// IsValid returns true if the gate is recognised.
func (g Gate) IsValid() bool {
	return g == GateExtended || g == GateDocuments
}

// String returns the string representation.
func (g Gate) String() string {
	return string(g)
}

// Prompt returns the text shown when asking for the gate password.
func (g Gate) Prompt() string {
	switch g {
	case GateExtended:
		return "Password for all applications"
	case GateDocuments:
		return "Password for documents"
	default:
		return "Password"
	}
}
