package driven

import "github.com/custodia-labs/geofind/internal/core/domain"

// MapViewport is the map rendering collaborator.
type MapViewport interface {
	// PanTo re-centres the view. Implementations must keep the current zoom.
	PanTo(cmd domain.PanCommand)
}
