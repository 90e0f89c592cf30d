package driving

import "github.com/custodia-labs/appreview/internal/core/domain"

// AccessService checks the constant-password gates.
type AccessService interface {
	// Check compares a password against a gate without remembering the result.
	Check(gate domain.Gate, password string) error

	// Unlock checks the password and keeps the gate open for this process.
	Unlock(gate domain.Gate, password string) error

	// IsUnlocked reports whether a gate has been opened.
	IsUnlocked(gate domain.Gate) bool

	// Lock closes a gate again.
	Lock(gate domain.Gate)
}
