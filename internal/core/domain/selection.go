package domain

import "encoding/json"

// Selection is the marker currently highlighted in both the list and the map.
// The zero value means nothing is selected.
type Selection struct {
	id  MarkerID
	set bool
}

// NoSelection returns an empty selection.
func NoSelection() Selection {
	return Selection{}
}

// Select returns a selection of the given marker id.
func Select(id MarkerID) Selection {
	return Selection{id: id, set: true}
}

// ID returns the selected id and whether a marker is selected.
func (s Selection) ID() (MarkerID, bool) {
	return s.id, s.set
}

// IsSet returns true if a marker is selected.
func (s Selection) IsSet() bool {
	return s.set
}

// Is returns true if the selection holds the given id.
func (s Selection) Is(id MarkerID) bool {
	return s.set && s.id == id
}

// String returns the selected id, or "none".
func (s Selection) String() string {
	if !s.set {
		return "none"
	}
	return string(s.id)
}

// MarshalJSON writes the id, or null when nothing is selected.
func (s Selection) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("null"), nil
	}
	return json.Marshal(string(s.id))
}
