package services

import (
	"crypto/subtle"
	"fmt"
	"sync"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
)

// Ensure AccessService implements the interface.
var _ driving.AccessService = (*AccessService)(nil)

// AccessService checks gate passwords against the configured constants.
// Gates keep casual visitors out; they are not authentication.
type AccessService struct {
	settings driving.SettingsService

	mu       sync.RWMutex
	unlocked map[domain.Gate]bool
}

// NewAccessService creates a new access service.
// Passwords are read from settings on every check so changes apply at once.
func NewAccessService(settings driving.SettingsService) *AccessService {
	return &AccessService{
		settings: settings,
		unlocked: make(map[domain.Gate]bool),
	}
}

// Check compares a password against a gate.
func (s *AccessService) Check(gate domain.Gate, password string) error {
	want, err := s.password(gate)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(want)) != 1 {
		return fmt.Errorf("%w: %s", domain.ErrAccessDenied, gate)
	}
	return nil
}

// Unlock checks the password and keeps the gate open for this process.
func (s *AccessService) Unlock(gate domain.Gate, password string) error {
	if err := s.Check(gate, password); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocked[gate] = true
	return nil
}

// IsUnlocked reports whether a gate has been opened.
func (s *AccessService) IsUnlocked(gate domain.Gate) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unlocked[gate]
}

// Lock closes a gate again.
func (s *AccessService) Lock(gate domain.Gate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.unlocked, gate)
}

func (s *AccessService) password(gate domain.Gate) (string, error) {
	defaults := domain.DefaultPortalSettings().Access
	access := defaults
	if s.settings != nil {
		settings, err := s.settings.Get()
		if err != nil {
			return "", fmt.Errorf("read gate passwords: %w", err)
		}
		access = settings.Access
	}

	switch gate {
	case domain.GateExtended:
		return access.ExtendedPassword, nil
	case domain.GateDocuments:
		return access.DocumentsPassword, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownGate, gate)
	}
}
