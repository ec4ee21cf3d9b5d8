package tui

import "errors"

// ErrMissingSearchCoordinator is returned when the search coordinator is not provided.
var ErrMissingSearchCoordinator = errors.New("tui: search coordinator is required")

// ErrMissingViewSync is returned when the view sync is not provided.
var ErrMissingViewSync = errors.New("tui: view sync is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
