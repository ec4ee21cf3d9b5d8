package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecidePan_FiresForResolvedSelection(t *testing.T) {
	cmd, ok := DecidePan(Select("b"), sampleMarkers())

	assert.True(t, ok)
	assert.Equal(t, PanCommand{MarkerID: "b", Lat: 52.52, Lon: 13.405, Animate: true}, cmd)
}

func TestDecidePan_NoSelection(t *testing.T) {
	_, ok := DecidePan(NoSelection(), sampleMarkers())

	assert.False(t, ok)
}

func TestDecidePan_NeverFiresOnEmptyMarkers(t *testing.T) {
	_, ok := DecidePan(Select("a"), nil)
	assert.False(t, ok)

	_, ok = DecidePan(Select("a"), []Marker{})
	assert.False(t, ok)
}

func TestDecidePan_DanglingSelection(t *testing.T) {
	_, ok := DecidePan(Select("old"), sampleMarkers())

	assert.False(t, ok)
}

func TestDecidePan_EmptyIDDoesNotPan(t *testing.T) {
	markers := []Marker{{ID: "", Lat: 51.2, Lon: 7.1}, {ID: "b", Lat: 52.52, Lon: 13.405}}

	_, ok := DecidePan(Select(""), markers)
	assert.False(t, ok)

	_, ok = DecidePan(Select("b"), markers)
	assert.True(t, ok)
}

func TestDecidePan_SameResultRegardlessOfOrigin(t *testing.T) {
	markers := sampleMarkers()
	fromList := Select("c")
	fromMap := Select("c")

	listCmd, listOK := DecidePan(fromList, markers)
	mapCmd, mapOK := DecidePan(fromMap, markers)

	assert.Equal(t, fromList, fromMap)
	assert.Equal(t, listOK, mapOK)
	assert.Equal(t, listCmd, mapCmd)
}
