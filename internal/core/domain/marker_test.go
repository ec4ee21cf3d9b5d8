package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMarkers() []Marker {
	return []Marker{
		{ID: "a", Lat: 51.2, Lon: 7.1, Name: "Solingen", PostalCode: "42119", State: "Nordrhein-Westfalen"},
		{ID: "b", Lat: 52.52, Lon: 13.405, Name: "Berlin"},
		{ID: "c", Lat: 48.137, Lon: 11.575},
	}
}

func TestMarker_DisplayFallbacks(t *testing.T) {
	m := Marker{ID: "x"}

	assert.Equal(t, "(unnamed)", m.DisplayName())
	assert.Equal(t, "Unknown", m.DisplayState())
	assert.Equal(t, "-", m.DisplayPostalCode())

	m = sampleMarkers()[0]
	assert.Equal(t, "Solingen", m.DisplayName())
	assert.Equal(t, "Nordrhein-Westfalen", m.DisplayState())
	assert.Equal(t, "42119", m.DisplayPostalCode())
}

func TestMarker_MarshalJSON_MergesExtra(t *testing.T) {
	m := Marker{
		ID:    "42119-Solingen",
		Lat:   51.2,
		Lon:   7.1,
		Name:  "Solingen",
		Extra: map[string]any{"source": "openplz"},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "42119-Solingen", decoded["id"])
	assert.InDelta(t, 51.2, decoded["lat"], 0.0001)
	assert.InDelta(t, 7.1, decoded["lon"], 0.0001)
	assert.Equal(t, "Solingen", decoded["name"])
	assert.Equal(t, "openplz", decoded["source"])
	assert.NotContains(t, decoded, "state")
}

func TestFindMarker(t *testing.T) {
	markers := sampleMarkers()

	m, ok := FindMarker(markers, "b")
	assert.True(t, ok)
	assert.Equal(t, "Berlin", m.Name)

	_, ok = FindMarker(markers, "zz")
	assert.False(t, ok)

	_, ok = FindMarker(nil, "a")
	assert.False(t, ok)
}

func TestIndexOfMarker_FirstMatchWins(t *testing.T) {
	markers := append(sampleMarkers(), Marker{ID: "a", Lat: 1, Lon: 1})

	assert.Equal(t, 0, IndexOfMarker(markers, "a"))
	assert.Equal(t, 2, IndexOfMarker(markers, "c"))
	assert.Equal(t, -1, IndexOfMarker(markers, "missing"))
}
