// Package tui provides an interactive terminal user interface for geofind.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/geofind/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search owns the search screen state.
	Search driving.SearchCoordinator

	// ViewSync decides when the map follows the selection.
	ViewSync driving.ViewSync

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchCoordinator,
	viewSync driving.ViewSync,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Search:   search,
		ViewSync: viewSync,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchCoordinator
	}
	if p.ViewSync == nil {
		return ErrMissingViewSync
	}
	return nil
}
