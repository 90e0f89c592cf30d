// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/appreview/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewBrowse is the filterable list of applications.
	ViewBrowse ViewType = iota
	// ViewDetail shows one application with its comments.
	ViewDetail
	// ViewMenu is the collection and navigation menu.
	ViewMenu
	// ViewGate asks for a gate password.
	ViewGate
	// ViewSettings is the settings view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewBrowse:
		return "browse"
	case ViewDetail:
		return "detail"
	case ViewMenu:
		return "menu"
	case ViewGate:
		return "gate"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CollectionRequested asks to browse a collection, passing its gate first.
type CollectionRequested struct {
	Collection domain.Collection
}

// CollectionLoaded reports the end of a collection load.
type CollectionLoaded struct {
	Collection domain.Collection
	Status     domain.LoadStatus
	Err        error
}

// PageLoaded carries one browse result. Seq matches the request so stale
// pages can be dropped.
type PageLoaded struct {
	Collection domain.Collection
	Seq        int
	State      domain.ViewState
	Page       domain.Page
	Counts     map[string]int
	Err        error
}

// FacetsLoaded carries the facet values of a collection.
type FacetsLoaded struct {
	Collection domain.Collection
	Options    domain.FacetOptions
	Err        error
}

// RecordSelected asks to open the detail view for one application.
type RecordSelected struct {
	Collection domain.Collection
	ID         string
}

// DeepLinkResolved reports whether a deep-linked id exists once the
// collection has loaded.
type DeepLinkResolved struct {
	Collection domain.Collection
	ID         string
	Err        error
}

// DetailLoaded carries one application and its comments.
type DetailLoaded struct {
	Collection domain.Collection
	ID         string
	Summary    domain.Summary
	Comments   []domain.Comment
	Err        error
}

// CommentAdded reports the result of adding a comment.
type CommentAdded struct {
	ApplicationID string
	Comment       *domain.Comment
	Err           error
}

// GateRequested asks for the password of a gate. Next is sent once the
// gate opens.
type GateRequested struct {
	Gate domain.Gate
	Next any
}

// GateResult reports a password attempt.
type GateResult struct {
	Gate domain.Gate
	Err  error
}

// ViewModeSaved reports the outcome of persisting the grid/list layout.
type ViewModeSaved struct {
	Mode domain.ViewMode
	Err  error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.PortalSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
