package services

import (
	"sync"

	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/core/ports/driven"
	"github.com/custodia-labs/geofind/internal/core/ports/driving"
	"github.com/custodia-labs/geofind/internal/logger"
)

// Ensure ViewSync implements the interface.
var _ driving.ViewSync = (*ViewSync)(nil)

// StateSource publishes search state snapshots.
type StateSource interface {
	Subscribe(fn func(domain.SearchUIState)) (unsubscribe func())
}

// ViewSync keeps the map centred on the selected marker.
//
// It re-evaluates only when the marker set or the selection changed since
// the previous observation, so unrelated publishes (loading flag, error)
// never move the map.
type ViewSync struct {
	viewport driven.MapViewport

	mu        sync.Mutex
	observed  bool
	revision  uint64
	selection domain.Selection
}

// NewViewSync creates a view sync. viewport may be nil, in which case
// commands are only returned from Observe.
func NewViewSync(viewport driven.MapViewport) *ViewSync {
	return &ViewSync{viewport: viewport}
}

// Observe inspects state and returns the pan command, if one fires.
func (v *ViewSync) Observe(state domain.SearchUIState) (domain.PanCommand, bool) {
	v.mu.Lock()
	changed := !v.observed || state.Revision != v.revision || state.Selection != v.selection
	v.observed = true
	v.revision = state.Revision
	v.selection = state.Selection
	v.mu.Unlock()

	if !changed {
		return domain.PanCommand{}, false
	}

	cmd, ok := domain.DecidePan(state.Selection, state.Markers)
	if !ok {
		return domain.PanCommand{}, false
	}

	logger.Debug("Pan to %s (%.5f, %.5f)", cmd.MarkerID, cmd.Lat, cmd.Lon)
	if v.viewport != nil {
		v.viewport.PanTo(cmd)
	}
	return cmd, true
}

// Attach subscribes the view sync to source and observes the current
// state on every publish. The returned function detaches it.
func (v *ViewSync) Attach(source StateSource) func() {
	return source.Subscribe(func(state domain.SearchUIState) {
		v.Observe(state)
	})
}
