package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gearplug/eventbrite-go/client/internal/api"
	"github.com/gearplug/eventbrite-go/client/internal/types"
)

// AuthorizationURL returns the URL the user is sent to in order to grant
// access. An empty state is left out of the query string.
func (c *Client) AuthorizationURL(state string) string {
	return c.authURL + "authorize?" + types.AuthorizeParams(c.clientID, c.redirectURI, state).Encode()
}

// GetAccessToken exchanges an authorization code for an access token. The
// body is form encoded; the client's default Content-Type is untouched.
// The token is not installed: call SetToken with it.
func (c *Client) GetAccessToken(ctx context.Context, code string) (*Result, error) {
	r := &api.Request{Method: http.MethodPost, Endpoint: "token", AuthHost: true}
	r.SetForm(types.TokenRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Code:         code,
		RedirectURI:  c.redirectURI,
	}.Form())
	return c.do(ctx, r)
}

// ExchangeCode is GetAccessToken decoded into a Token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	res, err := c.GetAccessToken(ctx, code)
	if err != nil {
		return nil, err
	}
	var tok Token
	if err := res.Decode(&tok); err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("exchange code: no access_token in response (status %d)", res.StatusCode)
	}
	return &tok, nil
}
