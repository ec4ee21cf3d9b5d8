// Package domain defines the core entities for geofind.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Marker: A geocoded search result with a stable id
//   - SearchQuery / SearchMeta / Info: A location search and its metadata
//   - Selection: The marker currently highlighted by the list and the map
//   - SearchUIState: The published state of the search screen
//   - PanCommand: A request to re-centre the map without zooming
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
