// Package errors provides the error taxonomy for the Eventbrite client SDK.
// Each kind maps to one HTTP status the API is known to answer with.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies which class of API failure an APIError represents.
type Kind int

const (
	// WrongFormatInput is returned for 400 Bad Request (malformed input).
	WrongFormatInput Kind = iota + 1

	// Unauthorized is returned for 401 (bad, missing or expired credentials).
	Unauthorized

	// ContactsLimitExceeded is returned for 406 (account quota reached).
	ContactsLimitExceeded

	// Server is returned for 500. It never carries a body.
	Server
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case WrongFormatInput:
		return "WrongFormatInput"
	case Unauthorized:
		return "Unauthorized"
	case ContactsLimitExceeded:
		return "ContactsLimitExceeded"
	case Server:
		return "Server"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Sentinels for errors.Is matching against an *APIError of the same kind.
var (
	ErrWrongFormatInput      = errors.New("eventbrite: wrong format input")
	ErrUnauthorized          = errors.New("eventbrite: unauthorized")
	ErrContactsLimitExceeded = errors.New("eventbrite: contacts limit exceeded")
	ErrServer                = errors.New("eventbrite: server error")
)

func (k Kind) sentinel() error {
	switch k {
	case WrongFormatInput:
		return ErrWrongFormatInput
	case Unauthorized:
		return ErrUnauthorized
	case ContactsLimitExceeded:
		return ErrContactsLimitExceeded
	case Server:
		return ErrServer
	default:
		return nil
	}
}

// APIError is a non-success response the client refuses to hand back as a
// payload. Body holds the parsed response (decoded JSON or raw text) and is
// nil for the Server kind.
type APIError struct {
	Kind       Kind
	StatusCode int
	Body       any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == nil {
		return fmt.Sprintf("[%s] HTTP %d", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("[%s] HTTP %d: %v", e.Kind, e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrUnauthorized) and friends match by kind.
func (e *APIError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Unwrap exposes the kind sentinel for error chain compatibility.
func (e *APIError) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the Kind of the first *APIError in err's chain, or 0.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}
