package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gearplug/eventbrite-go/client/internal/api"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Fixed hosts of the public Eventbrite API.
const (
	DefaultAPIURL  = "https://www.eventbriteapi.com/v3/"
	DefaultAuthURL = "https://www.eventbrite.com/oauth/"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is an Eventbrite API adapter. Each call issues one synchronous HTTP
// request and returns the parsed body or an error from the status dispatch.
//
// A Client owns its header set. SetToken changes only this instance; it is
// safe to call concurrently with requests, which see either the old or the
// new token.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string

	apiURL   string
	authURL  string
	authOnly bool
	debug    bool

	http   *http.Client
	logger zerolog.Logger

	mu     sync.RWMutex
	header http.Header
}

// New constructs a Client for the given OAuth application credentials.
// Additional options can be provided via functional arguments; pass
// WithAccessToken to start with a bearer token already installed.
func New(clientID, clientSecret, redirectURI string, opts ...Option) (*Client, error) {
	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		apiURL:       DefaultAPIURL,
		authURL:      DefaultAuthURL,
		http:         &http.Client{Timeout: 30 * time.Second},
		logger:       log.Logger,
		header: http.Header{
			"Content-Type": {api.ContentTypeJSON},
			"Accept":       {api.ContentTypeJSON},
		},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.wrapTransport()
	return c, nil
}

// wrapTransport installs the debug dumper (when enabled) beneath the metrics
// transport so every request is counted exactly once.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base, logger: c.logger}
	}
	c.http.Transport = &metricsTransport{base: base}
}

// SetToken installs token as the bearer credential for all subsequent
// requests made by this Client.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header.Set("Authorization", "Bearer "+token)
}

// Headers returns a copy of the default headers sent with every request.
func (c *Client) Headers() http.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.header.Clone()
}

// APIURL returns the base URL used for API requests.
func (c *Client) APIURL() string { return c.apiURL }

// AuthURL returns the base URL used for OAuth requests.
func (c *Client) AuthURL() string { return c.authURL }

func (c *Client) base(r *api.Request) string {
	if c.authOnly || r.AuthHost {
		return c.authURL
	}
	return c.apiURL
}

func newRequest(method, endpoint string, opts []RequestOption) *api.Request {
	r := &api.Request{Method: method, Endpoint: endpoint}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// --------------------------------------------------------------------
// Generic verbs
// --------------------------------------------------------------------

// Request issues method against endpoint and returns the raw response. The
// base URL is the OAuth host when WithAuthHost is given or the client is in
// auth-only mode, otherwise the API host. The caller must close the body or
// hand the response to Parse.
func (c *Client) Request(ctx context.Context, method, endpoint string, opts ...RequestOption) (*http.Response, error) {
	return c.send(ctx, newRequest(method, endpoint, opts))
}

func (c *Client) send(ctx context.Context, r *api.Request) (*http.Response, error) {
	base := c.base(r)
	start := time.Now()
	resp, err := api.Send(ctx, c.http, base, r, c.Headers())
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", r.Method).Str("endpoint", r.Endpoint).Dur("elapsed", elapsed).Msg("eventbrite request failed")
		return nil, err
	}
	c.logger.Debug().
		Str("method", r.Method).
		Str("url", r.URL(base)).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("eventbrite request")
	return resp, nil
}

// Parse applies the status-code dispatch to resp and closes its body.
// See the package documentation for the exact contract.
func Parse(resp *http.Response) (*Result, error) {
	res, err := api.Parse(resp)
	if err != nil {
		countAPIError(err)
	}
	return res, err
}

// Do issues one request and parses the response.
func (c *Client) Do(ctx context.Context, method, endpoint string, opts ...RequestOption) (*Result, error) {
	return c.do(ctx, newRequest(method, endpoint, opts))
}

func (c *Client) do(ctx context.Context, r *api.Request) (*Result, error) {
	resp, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	return Parse(resp)
}

// Get issues a GET request to endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodGet, endpoint, opts...)
}

// Post issues a POST request to endpoint.
func (c *Client) Post(ctx context.Context, endpoint string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodPost, endpoint, opts...)
}

// Put issues a PUT request to endpoint.
func (c *Client) Put(ctx context.Context, endpoint string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodPut, endpoint, opts...)
}

// Patch issues a PATCH request to endpoint.
func (c *Client) Patch(ctx context.Context, endpoint string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodPatch, endpoint, opts...)
}

// Delete issues a DELETE request to endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string, opts ...RequestOption) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, opts...)
}
