package driven

import (
	"context"

	"github.com/custodia-labs/geofind/internal/core/domain"
)

// SearchRequest is one backend search call.
type SearchRequest struct {
	// ID correlates the request with a search ticket.
	ID string

	// Type selects the backend endpoint.
	Type domain.SearchType

	// Value is the trimmed query value, not yet URL-encoded.
	Value string
}

// SearchPayload is the decoded, still untrusted, body of a successful response.
// Fields hold whatever the backend sent (nil when absent); the marker
// normaliser is the only place that turns them into domain types.
type SearchPayload struct {
	Markers any
	Info    any
	Count   any
}

// LocationBackend executes location searches.
type LocationBackend interface {
	// Search runs a query. A non-2xx status is reported as *domain.BackendError.
	Search(ctx context.Context, req SearchRequest) (*SearchPayload, error)
}
