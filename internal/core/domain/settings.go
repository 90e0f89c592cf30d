package domain

import (
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// CommentBackend selects where comments are persisted.
type CommentBackend string

// Available comment backends.
const (
	// CommentBackendSQLite stores comments in a local SQLite database.
	CommentBackendSQLite CommentBackend = "sqlite"

	// CommentBackendFile stores comments as one JSON mapping on disk.
	CommentBackendFile CommentBackend = "file"

	// CommentBackendMemory keeps comments for the process lifetime only.
	CommentBackendMemory CommentBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b CommentBackend) IsValid() bool {
	switch b {
	case CommentBackendSQLite, CommentBackendFile, CommentBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b CommentBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b CommentBackend) Description() string {
	switch b {
	case CommentBackendSQLite:
		return "SQLite database (comments.db)"
	case CommentBackendFile:
		return "JSON file (comments.json)"
	case CommentBackendMemory:
		return "In memory (lost on exit)"
	default:
		return unknownDescription
	}
}

// AllCommentBackends returns all available comment backends.
func AllCommentBackends() []CommentBackend {
	return []CommentBackend{CommentBackendSQLite, CommentBackendFile, CommentBackendMemory}
}

// DatasetSettings locates the two collections.
type DatasetSettings struct {
	// Path is the shortlisted collection, a local file.
	Path string

	// ExtendedPath is the gated collection of all applications.
	ExtendedPath string

	// URL, when set, is fetched with a plain GET instead of reading Path.
	URL string

	// ExtendedURL, when set, is fetched instead of reading ExtendedPath.
	ExtendedURL string
}

// AccessSettings holds the two gate passwords.
type AccessSettings struct {
	ExtendedPassword  string
	DocumentsPassword string
}

// ServerSettings configures the HTTP surface.
type ServerSettings struct {
	Addr string

	// RefreshInterval reloads both collections while serving. Zero disables it.
	RefreshInterval time.Duration
}

// PortalSettings holds all application settings.
type PortalSettings struct {
	// Dataset locates the collections.
	Dataset DatasetSettings

	// CommentBackend selects comment persistence.
	CommentBackend CommentBackend

	// ViewMode is the persisted grid/list layout.
	ViewMode ViewMode

	// ReviewerLabel identifies this reviewer on comments.
	ReviewerLabel string

	// Access holds the gate passwords.
	Access AccessSettings

	// Server configures `serve`.
	Server ServerSettings
}

// Default values for settings.
const (
	DefaultDatasetFile         = "applications.json"
	DefaultExtendedDatasetFile = "allapplications.json"
	DefaultServerAddr          = "127.0.0.1:8000"
)

// DefaultPortalSettings returns settings with sensible defaults.
// The reviewer label is left empty and generated on first use.
func DefaultPortalSettings() PortalSettings {
	return PortalSettings{
		Dataset: DatasetSettings{
			Path:         DefaultDatasetFile,
			ExtendedPath: DefaultExtendedDatasetFile,
		},
		CommentBackend: CommentBackendSQLite,
		ViewMode:       ViewModeGrid,
		Access: AccessSettings{
			ExtendedPassword:  DefaultExtendedPassword,
			DocumentsPassword: DefaultDocumentsPassword,
		},
		Server: ServerSettings{Addr: DefaultServerAddr},
	}
}

// ReviewerLabelPrefix starts every generated reviewer label.
const ReviewerLabelPrefix = "Reviewer "

// NewReviewerLabel builds a reviewer label from a random token.
func NewReviewerLabel(token string) string {
	token = strings.ReplaceAll(token, "-", "")
	if len(token) > 8 {
		token = token[:8]
	}
	return ReviewerLabelPrefix + strings.ToUpper(token)
}
