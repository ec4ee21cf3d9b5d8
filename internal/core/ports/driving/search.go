package driving

import (
	"context"

	"github.com/custodia-labs/geofind/internal/core/domain"
)

// SearchCoordinator owns the search screen state.
//
// A search runs in three steps so that hosts with an event loop can keep
// state changes on that loop: Begin and Complete publish state, Fetch does
// the network work and may run anywhere.
type SearchCoordinator interface {
	// Begin enters the loading state for a query.
	// Returns false, without touching state, if the trimmed value is empty.
	Begin(query domain.SearchQuery) (domain.SearchTicket, bool)

	// Fetch performs the backend request for a ticket and normalises the result.
	Fetch(ctx context.Context, ticket domain.SearchTicket) domain.SearchOutcome

	// Complete publishes an outcome and clears the loading flag.
	Complete(outcome domain.SearchOutcome)

	// Search runs Begin, Fetch and Complete and returns the resulting state.
	Search(ctx context.Context, query domain.SearchQuery) domain.SearchUIState

	// Select sets the active marker. Used by both the list and the map.
	Select(id domain.MarkerID)

	// State returns a snapshot of the current state.
	State() domain.SearchUIState

	// Subscribe registers fn to receive every published state.
	// The returned function removes the subscription.
	Subscribe(fn func(domain.SearchUIState)) (unsubscribe func())
}
