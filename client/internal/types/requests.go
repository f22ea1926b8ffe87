package types

import "net/url"

// ------------------------------
// Request Types
// ------------------------------

// WebhookRequest is the body sent when registering a webhook. EventID is
// always serialized; an organization-wide webhook sends "".
type WebhookRequest struct {
	EndpointURL string `json:"endpoint_url"`
	Actions     string `json:"actions"`
	EventID     string `json:"event_id"`
}

// TokenRequest holds the fields of an authorization-code exchange.
type TokenRequest struct {
	ClientID     string
	ClientSecret string
	Code         string
	RedirectURI  string
}

// Form encodes the exchange as the form body the token endpoint expects.
func (t TokenRequest) Form() url.Values {
	return url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {t.ClientID},
		"client_secret": {t.ClientSecret},
		"code":          {t.Code},
		"redirect_uri":  {t.RedirectURI},
	}
}

// AuthorizeParams builds the query string of the authorize URL. An empty
// state is omitted.
func AuthorizeParams(clientID, redirectURI, state string) url.Values {
	v := url.Values{
		"response_type": {"code"},
		"client_id":     {clientID},
		"redirect_uri":  {redirectURI},
	}
	if state != "" {
		v.Set("state", state)
	}
	return v
}
