package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a search value that is blank after trimming.
	ErrEmptyQuery = errors.New("empty search query")

	// ErrUnknownSearchType indicates a query type outside postal-code, city and state.
	ErrUnknownSearchType = errors.New("unknown search type")

	// ErrUnknownSetting indicates a settings key that is not recognised.
	ErrUnknownSetting = errors.New("unknown setting")
)

// Messages written into SearchUIState.ErrorMessage.
const (
	// MessageNoResults is the soft error shown when a search matched nothing.
	MessageNoResults = "no results found"

	// MessageUnexpected is used when a failure carries no message of its own.
	MessageUnexpected = "unexpected error"
)

// BackendError is returned when the search backend answers with a non-2xx status.
// Body holds the raw response text.
type BackendError struct {
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Body)
}

// IsBackendError reports whether err wraps a BackendError.
func IsBackendError(err error) bool {
	var backendErr *BackendError
	return errors.As(err, &backendErr)
}

// ErrorKind tags the message held in SearchUIState.ErrorMessage.
type ErrorKind int

const (
	// ErrorKindNone means no error is displayed.
	ErrorKindNone ErrorKind = iota
	// ErrorKindSoftEmpty means the search succeeded with zero markers.
	ErrorKindSoftEmpty
	// ErrorKindHard means the search failed.
	ErrorKindHard
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "none"
	case ErrorKindSoftEmpty:
		return "soft_empty"
	case ErrorKindHard:
		return "hard"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
