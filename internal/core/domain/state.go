package domain

// SearchPhase summarises where the search screen is in its lifecycle.
type SearchPhase string

// Search phases.
const (
	// PhaseIdle means no search has been started yet.
	PhaseIdle SearchPhase = "idle"
	// PhaseLoading means a search is in flight.
	PhaseLoading SearchPhase = "loading"
	// PhaseResults means the last search returned markers.
	PhaseResults SearchPhase = "results"
	// PhaseEmpty means the last search returned no markers.
	PhaseEmpty SearchPhase = "empty"
	// PhaseFailed means the last search failed.
	PhaseFailed SearchPhase = "failed"
)

// SearchUIState is everything the views render.
// Exactly one of loading or a terminal phase holds at a time.
type SearchUIState struct {
	Loading      bool       `json:"loading"`
	ErrorMessage string     `json:"errorMessage"`
	ErrorKind    ErrorKind  `json:"errorKind"`
	Markers      []Marker   `json:"markers"`
	Info         *Info      `json:"info"`
	Meta         SearchMeta `json:"meta"`
	Selection    Selection  `json:"selection"`

	// Revision increments whenever the marker set is replaced.
	Revision uint64 `json:"-"`
}

// Phase derives the lifecycle phase from the state.
func (s SearchUIState) Phase() SearchPhase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.ErrorKind == ErrorKindHard:
		return PhaseFailed
	case s.ErrorKind == ErrorKindSoftEmpty:
		return PhaseEmpty
	case s.Meta.Type == "":
		return PhaseIdle
	default:
		return PhaseResults
	}
}

// HasError returns true if an error message is displayed.
func (s SearchUIState) HasError() bool {
	return s.ErrorMessage != ""
}

// SelectedMarker returns the selected marker if it resolves in the current set.
func (s SearchUIState) SelectedMarker() (Marker, bool) {
	id, ok := s.Selection.ID()
	if !ok {
		return Marker{}, false
	}
	return FindMarker(s.Markers, id)
}

// SelectedIndex returns the position of the selected marker, or -1.
func (s SearchUIState) SelectedIndex() int {
	id, ok := s.Selection.ID()
	if !ok {
		return -1
	}
	return IndexOfMarker(s.Markers, id)
}

// Clone returns a copy that shares no mutable memory with s.
func (s SearchUIState) Clone() SearchUIState {
	out := s
	if s.Markers != nil {
		out.Markers = make([]Marker, len(s.Markers))
		copy(out.Markers, s.Markers)
	}
	if s.Info != nil {
		info := *s.Info
		out.Info = &info
	}
	return out
}
