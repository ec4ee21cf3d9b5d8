package domain

// PanCommand asks the map to re-centre on a marker.
// It never carries a zoom level: following a selection keeps the user's zoom.
type PanCommand struct {
	MarkerID MarkerID
	Lat      float64
	Lon      float64
	Animate  bool
}

// DecidePan returns the pan for the current selection.
// It fires only when the selection holds a non-empty id that resolves
// within markers.
func DecidePan(selection Selection, markers []Marker) (PanCommand, bool) {
	if len(markers) == 0 {
		return PanCommand{}, false
	}
	id, ok := selection.ID()
	if !ok || id == "" {
		return PanCommand{}, false
	}
	m, ok := FindMarker(markers, id)
	if !ok {
		return PanCommand{}, false
	}
	return PanCommand{MarkerID: m.ID, Lat: m.Lat, Lon: m.Lon, Animate: true}, true
}
