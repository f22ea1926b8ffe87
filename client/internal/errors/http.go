package errors

import "net/http"

// FromStatus maps an HTTP status code to the error the client must return.
//
// Only four codes are treated as failures:
//   - 400 WrongFormatInput, carrying body
//   - 401 Unauthorized, carrying body
//   - 406 ContactsLimitExceeded, carrying body
//   - 500 Server, body dropped
//
// Every other status, including redirects and unlisted 4xx/5xx codes, yields
// nil: the caller receives the parsed body as if the call succeeded.
func FromStatus(statusCode int, body any) *APIError {
	switch statusCode {
	case http.StatusBadRequest:
		return &APIError{Kind: WrongFormatInput, StatusCode: statusCode, Body: body}
	case http.StatusUnauthorized:
		return &APIError{Kind: Unauthorized, StatusCode: statusCode, Body: body}
	case http.StatusNotAcceptable:
		return &APIError{Kind: ContactsLimitExceeded, StatusCode: statusCode, Body: body}
	case http.StatusInternalServerError:
		return &APIError{Kind: Server, StatusCode: statusCode}
	default:
		return nil
	}
}
