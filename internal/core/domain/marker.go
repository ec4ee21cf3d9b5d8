package domain

import "encoding/json"

// MarkerID identifies a marker within one result set.
// Backends may send strings or numbers; numbers keep their literal JSON text.
type MarkerID string

// String returns the id as a string.
func (id MarkerID) String() string {
	return string(id)
}

// Marker is one geocoded location returned by a search.
type Marker struct {
	// ID is unique within a result set.
	ID MarkerID

	// Lat and Lon are always finite once a marker leaves the normaliser.
	Lat float64
	Lon float64

	// Name, PostalCode and State are optional and may be empty.
	Name       string
	PostalCode string
	State      string

	// Extra holds every other field of the backend record, untouched.
	Extra map[string]any
}

// DisplayName returns the name or a fallback for unnamed markers.
func (m Marker) DisplayName() string {
	if m.Name == "" {
		return "(unnamed)"
	}
	return m.Name
}

// DisplayState returns the state or "Unknown".
func (m Marker) DisplayState() string {
	if m.State == "" {
		return unknownDescription
	}
	return m.State
}

// DisplayPostalCode returns the postal code or "-".
func (m Marker) DisplayPostalCode() string {
	if m.PostalCode == "" {
		return "-"
	}
	return m.PostalCode
}

// MarshalJSON writes the marker in the backend's record shape,
// with the extra fields merged back in.
func (m Marker) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+6)
	for k, v := range m.Extra {
		out[k] = v
	}
	out["id"] = string(m.ID)
	out["lat"] = m.Lat
	out["lon"] = m.Lon
	if m.Name != "" {
		out["name"] = m.Name
	}
	if m.PostalCode != "" {
		out["postalCode"] = m.PostalCode
	}
	if m.State != "" {
		out["state"] = m.State
	}
	return json.Marshal(out)
}

// FindMarker returns the first marker with the given id.
func FindMarker(markers []Marker, id MarkerID) (Marker, bool) {
	i := IndexOfMarker(markers, id)
	if i < 0 {
		return Marker{}, false
	}
	return markers[i], true
}

// IndexOfMarker returns the position of the first marker with the given id, or -1.
func IndexOfMarker(markers []Marker, id MarkerID) int {
	for i := range markers {
		if markers[i].ID == id {
			return i
		}
	}
	return -1
}
