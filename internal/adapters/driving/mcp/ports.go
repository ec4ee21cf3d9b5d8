package mcp

import (
	"github.com/custodia-labs/geofind/internal/core/ports/driving"
)

// CoordinatorFactory builds a fresh coordinator for a single tool call.
type CoordinatorFactory func() driving.SearchCoordinator

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// NewCoordinator creates one coordinator per search_locations call so
	// concurrent clients never share selection or loading state.
	NewCoordinator CoordinatorFactory

	// Settings exposes configuration as resources. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.NewCoordinator == nil {
		return ErrMissingCoordinatorFactory
	}
	return nil
}
