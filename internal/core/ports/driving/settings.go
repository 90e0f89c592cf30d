package driving

import (
	"time"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.PortalSettings, error)

	// Save persists application settings.
	Save(settings *domain.PortalSettings) error

	// SetViewMode persists the grid/list layout.
	SetViewMode(mode domain.ViewMode) error

	// SetCommentBackend selects where comments are stored.
	SetCommentBackend(backend domain.CommentBackend) error

	// SetDatasetPath points a collection at a local file.
	SetDatasetPath(collection domain.Collection, path string) error

	// SetRefreshInterval sets how often `serve` reloads the datasets.
	SetRefreshInterval(d time.Duration) error

	// SetGatePassword changes the password of an access gate.
	SetGatePassword(gate domain.Gate, password string) error

	// ReviewerLabel returns the reviewer label, generating and persisting
	// one on first use.
	ReviewerLabel() string

	// GetDefaults returns default settings.
	GetDefaults() domain.PortalSettings
}
