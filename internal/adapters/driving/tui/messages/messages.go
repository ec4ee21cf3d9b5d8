// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/geofind/internal/core/domain"
)

// SearchCompleted carries the result of a backend fetch back to the update loop,
// where it is published by the coordinator.
type SearchCompleted struct {
	Outcome domain.SearchOutcome
}

// SelectionOrigin identifies which view selected a marker.
type SelectionOrigin int

const (
	// OriginList is a selection made in the marker list.
	OriginList SelectionOrigin = iota
	// OriginMap is a selection made by clicking or cycling map pins.
	OriginMap
)

// String returns the string representation of the origin.
func (o SelectionOrigin) String() string {
	switch o {
	case OriginList:
		return "list"
	case OriginMap:
		return "map"
	default:
		return "unknown"
	}
}

// MarkerSelected is sent when the user picks a marker in the list or on the map.
type MarkerSelected struct {
	ID     domain.MarkerID
	Origin SelectionOrigin
}

// MapFrame advances the map pan animation. Frames from a superseded
// animation carry an old Seq and are ignored.
type MapFrame struct {
	Seq int
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search screen: form, info, list and map.
	ViewSearch ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings editor.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals a setting was written.
type SettingsSaved struct {
	Key string
	Err error
}

// SettingsReloaded is sent when the config file changed on disk.
type SettingsReloaded struct {
	Settings *domain.AppSettings
	Err      error
}
