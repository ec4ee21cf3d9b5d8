package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchCoordinator indicates that no search coordinator was provided.
	ErrNoSearchCoordinator = errors.New("search coordinator is required")
)
