// Package client is a thin adapter over the Eventbrite REST and OAuth APIs.
//
// Every operation issues a single synchronous HTTP request against a fixed
// endpoint template and runs the response through Parse:
//
//   - a Content-Type containing application/json is decoded; a body that
//     fails to decode is kept as text
//   - 200 returns the payload
//   - 204 returns a nil Result and a nil error
//   - 400, 401 and 406 return an *APIError of kind WrongFormatInput,
//     Unauthorized and ContactsLimitExceeded, carrying the payload
//   - 500 returns an *APIError of kind Server without payload
//   - any other status returns the payload as a successful Result; check
//     Result.StatusCode when that matters
//
// There are no retries, no pagination and no token refresh.
//
// Typical use:
//
//	c, err := client.New(clientID, secret, redirectURI)
//	url := c.AuthorizationURL(state)
//	// ... user comes back with ?code=...
//	tok, err := c.ExchangeCode(ctx, code)
//	c.SetToken(tok.AccessToken)
//	me, err := c.GetCurrentUser(ctx)
package client
