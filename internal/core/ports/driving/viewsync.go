package driving

import "github.com/custodia-labs/geofind/internal/core/domain"

// ViewSync decides when the map should follow the selection.
type ViewSync interface {
	// Observe inspects a published state and returns the pan to perform, if any.
	Observe(state domain.SearchUIState) (domain.PanCommand, bool)
}
