package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driven"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
	"github.com/custodia-labs/appreview/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDatasetPath         = "dataset.path"
	keyDatasetExtendedPath = "dataset.extended_path"
	keyDatasetURL          = "dataset.url"
	keyDatasetExtendedURL  = "dataset.extended_url"
	keyCommentsBackend     = "comments.backend"
	keyViewMode            = "view.mode"
	keyReviewerLabel       = "reviewer.label"
	keyExtendedPassword    = "access.extended_password"
	keyDocumentsPassword   = "access.documents_password"
	keyServerAddr          = "server.addr"
	keyServerRefresh       = "server.refresh_interval"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Unrecognised values fall back to their defaults.
func (s *SettingsService) Get() (*domain.PortalSettings, error) {
	defaults := domain.DefaultPortalSettings()

	settings := &domain.PortalSettings{
		Dataset: domain.DatasetSettings{
			Path:         s.getString(keyDatasetPath, defaults.Dataset.Path),
			ExtendedPath: s.getString(keyDatasetExtendedPath, defaults.Dataset.ExtendedPath),
			URL:          s.configStore.GetString(keyDatasetURL),
			ExtendedURL:  s.configStore.GetString(keyDatasetExtendedURL),
		},
		CommentBackend: s.getCommentBackend(defaults.CommentBackend),
		ViewMode:       s.getViewMode(defaults.ViewMode),
		ReviewerLabel:  s.configStore.GetString(keyReviewerLabel),
		Access: domain.AccessSettings{
			ExtendedPassword:  s.getString(keyExtendedPassword, defaults.Access.ExtendedPassword),
			DocumentsPassword: s.getString(keyDocumentsPassword, defaults.Access.DocumentsPassword),
		},
		Server: domain.ServerSettings{
			Addr:            s.getString(keyServerAddr, defaults.Server.Addr),
			RefreshInterval: s.getDuration(keyServerRefresh, defaults.Server.RefreshInterval),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.PortalSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keyDatasetPath, settings.Dataset.Path},
		{keyDatasetExtendedPath, settings.Dataset.ExtendedPath},
		{keyDatasetURL, settings.Dataset.URL},
		{keyDatasetExtendedURL, settings.Dataset.ExtendedURL},
		{keyCommentsBackend, settings.CommentBackend.String()},
		{keyViewMode, settings.ViewMode.String()},
		{keyExtendedPassword, settings.Access.ExtendedPassword},
		{keyDocumentsPassword, settings.Access.DocumentsPassword},
		{keyServerAddr, settings.Server.Addr},
		{keyServerRefresh, settings.Server.RefreshInterval.String()},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.ReviewerLabel != "" {
		if err := s.configStore.Set(keyReviewerLabel, settings.ReviewerLabel); err != nil {
			return fmt.Errorf("save %s: %w", keyReviewerLabel, err)
		}
	}

	return nil
}

// SetViewMode persists the grid/list layout.
func (s *SettingsService) SetViewMode(mode domain.ViewMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownViewMode, mode)
	}
	return s.configStore.Set(keyViewMode, mode.String())
}

// SetCommentBackend selects where comments are stored.
// The change applies on the next start.
func (s *SettingsService) SetCommentBackend(backend domain.CommentBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: comment backend %q", domain.ErrInvalidInput, backend)
	}
	return s.configStore.Set(keyCommentsBackend, backend.String())
}

// SetDatasetPath points a collection at a local file.
func (s *SettingsService) SetDatasetPath(collection domain.Collection, path string) error {
	if path == "" {
		return fmt.Errorf("%w: dataset path is empty", domain.ErrInvalidInput)
	}
	switch collection {
	case domain.CollectionShortlisted:
		return s.configStore.Set(keyDatasetPath, path)
	case domain.CollectionAll:
		return s.configStore.Set(keyDatasetExtendedPath, path)
	default:
		return fmt.Errorf("%w: unknown collection %q", domain.ErrInvalidInput, collection)
	}
}

// SetRefreshInterval sets how often `serve` reloads the datasets.
func (s *SettingsService) SetRefreshInterval(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: negative refresh interval %s", domain.ErrInvalidInput, d)
	}
	return s.configStore.Set(keyServerRefresh, d.String())
}

// SetGatePassword changes the password of an access gate.
func (s *SettingsService) SetGatePassword(gate domain.Gate, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is empty", domain.ErrInvalidInput)
	}
	switch gate {
	case domain.GateExtended:
		return s.configStore.Set(keyExtendedPassword, password)
	case domain.GateDocuments:
		return s.configStore.Set(keyDocumentsPassword, password)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownGate, gate)
	}
}

// ReviewerLabel returns the reviewer label. The first call generates one
// and persists it; a failed write is logged and the label is still used.
func (s *SettingsService) ReviewerLabel() string {
	if label := s.configStore.GetString(keyReviewerLabel); label != "" {
		return label
	}

	label := domain.NewReviewerLabel(uuid.NewString())
	if err := s.configStore.Set(keyReviewerLabel, label); err != nil {
		logger.Warn("could not persist reviewer label: %v", err)
	}
	return label
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.PortalSettings {
	return domain.DefaultPortalSettings()
}

// Helper methods for reading config values with defaults

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getViewMode(defaultVal domain.ViewMode) domain.ViewMode {
	val := s.configStore.GetString(keyViewMode)
	if val == "" {
		return defaultVal
	}
	mode, err := domain.ParseViewMode(val)
	if err != nil {
		logger.Warn("ignoring %s: %v", keyViewMode, err)
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getCommentBackend(defaultVal domain.CommentBackend) domain.CommentBackend {
	val := domain.CommentBackend(s.configStore.GetString(keyCommentsBackend))
	if val == "" {
		return defaultVal
	}
	if !val.IsValid() {
		logger.Warn("ignoring %s: unknown backend %q", keyCommentsBackend, val)
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		logger.Warn("ignoring %s: invalid duration %q", key, val)
		return defaultVal
	}
	return d
}
