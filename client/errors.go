package client

import (
	"errors"

	clienterrors "github.com/gearplug/eventbrite-go/client/internal/errors"
)

// APIError is returned by Parse for the statuses the API treats as failures.
type APIError = clienterrors.APIError

// ErrorKind classifies an APIError.
type ErrorKind = clienterrors.Kind

const (
	KindWrongFormatInput      = clienterrors.WrongFormatInput
	KindUnauthorized          = clienterrors.Unauthorized
	KindContactsLimitExceeded = clienterrors.ContactsLimitExceeded
	KindServer                = clienterrors.Server
)

// Re-export the kind sentinels so callers compare against a single symbol:
//
//	if errors.Is(err, client.ErrUnauthorized) { ... }
var (
	// ErrWrongFormatInput matches 400 responses.
	ErrWrongFormatInput = clienterrors.ErrWrongFormatInput
	// ErrUnauthorized matches 401 responses.
	ErrUnauthorized = clienterrors.ErrUnauthorized
	// ErrContactsLimitExceeded matches 406 responses.
	ErrContactsLimitExceeded = clienterrors.ErrContactsLimitExceeded
	// ErrServer matches 500 responses. It carries no body.
	ErrServer = clienterrors.ErrServer
)

// KindOf reports the kind of the APIError in err's chain, or 0 when err is
// not an API error (for instance a transport failure).
func KindOf(err error) ErrorKind { return clienterrors.KindOf(err) }

// ErrorBody returns the parsed body carried by an APIError in err's chain.
func ErrorBody(err error) (any, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return nil, false
	}
	return apiErr.Body, true
}
