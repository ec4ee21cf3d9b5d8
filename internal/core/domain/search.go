package domain

import (
	"strings"
	"time"
)

// SearchType discriminates what the query value means.
type SearchType string

// Available search types.
const (
	// SearchTypePostalCode searches by postal code.
	SearchTypePostalCode SearchType = "postal-code"

	// SearchTypeCity searches by city name.
	SearchTypeCity SearchType = "city"

	// SearchTypeState searches by federal-state name.
	SearchTypeState SearchType = "state"
)

// AllSearchTypes returns the search types in selector order.
func AllSearchTypes() []SearchType {
	return []SearchType{SearchTypePostalCode, SearchTypeCity, SearchTypeState}
}

// ParseSearchType maps user input to a search type.
// "plz" is accepted as an alias for postal-code.
func ParseSearchType(s string) (SearchType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postal-code", "postal_code", "postalcode", "plz":
		return SearchTypePostalCode, true
	case "city":
		return SearchTypeCity, true
	case "state":
		return SearchTypeState, true
	default:
		return SearchType(s), false
	}
}

// IsValid returns true if the search type is recognised.
func (t SearchType) IsValid() bool {
	switch t {
	case SearchTypePostalCode, SearchTypeCity, SearchTypeState:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SearchType) String() string {
	return string(t)
}

// PathSegment returns the backend URL segment for the type.
func (t SearchType) PathSegment() string {
	return string(t)
}

// Label returns a human-readable label.
func (t SearchType) Label() string {
	switch t {
	case SearchTypePostalCode:
		return "Postal code"
	case SearchTypeCity:
		return "City"
	case SearchTypeState:
		return "State"
	default:
		return ""
	}
}

// Next returns the following type in selector order, wrapping around.
func (t SearchType) Next() SearchType {
	types := AllSearchTypes()
	for i, candidate := range types {
		if candidate == t {
			return types[(i+1)%len(types)]
		}
	}
	return types[0]
}

// SearchQuery is what the user submits.
type SearchQuery struct {
	Type  SearchType
	Value string
}

// Trimmed returns the query with surrounding whitespace removed from the value.
func (q SearchQuery) Trimmed() SearchQuery {
	return SearchQuery{Type: q.Type, Value: strings.TrimSpace(q.Value)}
}

// IsEmpty returns true if the value is blank.
func (q SearchQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Value) == ""
}

// SearchMeta describes the last executed search.
type SearchMeta struct {
	Type  SearchType `json:"type"`
	Value string     `json:"value"`
	Count int        `json:"count"`
}

// Info is optional descriptive content attached to a whole search.
type Info struct {
	Title     string `json:"title,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	URL       string `json:"url,omitempty"`
}

// DisplayTitle returns the title or a fallback.
func (i Info) DisplayTitle() string {
	if i.Title == "" {
		return "Information"
	}
	return i.Title
}

// DisplaySummary returns the summary or a fallback.
func (i Info) DisplaySummary() string {
	if i.Summary == "" {
		return "No description available."
	}
	return i.Summary
}

// SearchTicket identifies one started search.
type SearchTicket struct {
	// ID is unique per search and sent to the backend as a request id.
	ID string

	// Query holds the trimmed query.
	Query SearchQuery

	// StartedAt is when the search entered the loading state.
	StartedAt time.Time
}

// SearchOutcome is the settled result of one search request, before it is published.
type SearchOutcome struct {
	Ticket  SearchTicket
	Markers []Marker
	Info    *Info
	Count   int
	Err     error
}
