package httpapi

import "errors"

// ErrMissingBaseURL is returned when a client is configured without a base URL.
var ErrMissingBaseURL = errors.New("backend base URL is required")
