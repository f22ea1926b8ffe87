package client

// This file defines functional options that configure the Client during
// construction, and request options that shape a single call. Keeping them in
// a standalone file makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gearplug/eventbrite-go/client/internal/api"
	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options run in the order given. WithHTTPClient replaces the underlying
// http.Client, so pass it before WithHTTPTimeout or WithDebugLogging.
type Option func(*Client) error

// WithAccessToken installs a pre-obtained OAuth token as the bearer
// credential, exactly as if SetToken were called right after New.
func WithAccessToken(token string) Option {
	return func(c *Client) error {
		if token != "" {
			c.SetToken(token)
		}
		return nil
	}
}

// WithHTTPClient injects the http.Client used for every request. The client
// is copied, so later options never mutate the caller's value.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithTransport sets the RoundTripper underneath the client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		if rt == nil {
			return fmt.Errorf("transport must not be nil")
		}
		c.http.Transport = rt
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse bound on a single HTTP request including reading the response.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// dumped at debug level when enabled is true. Bearer tokens are redacted but
// bodies, including client secrets in token exchanges, are not.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.debug = true
		}
		return nil
	}
}

// WithAPIURL overrides the API base URL. It must end with "/" since
// endpoints are appended verbatim.
func WithAPIURL(base string) Option {
	return func(c *Client) error {
		if err := checkBase(base); err != nil {
			return fmt.Errorf("api url: %w", err)
		}
		c.apiURL = base
		return nil
	}
}

// WithAuthURL overrides the OAuth base URL. It must end with "/".
func WithAuthURL(base string) Option {
	return func(c *Client) error {
		if err := checkBase(base); err != nil {
			return fmt.Errorf("auth url: %w", err)
		}
		c.authURL = base
		return nil
	}
}

// WithAuthOnly switches the client to auth-only mode: every request targets
// the OAuth host and the default Content-Type is form encoded.
func WithAuthOnly() Option {
	return func(c *Client) error {
		c.authOnly = true
		c.header.Set("Content-Type", api.ContentTypeForm)
		return nil
	}
}

// WithLogger sets the logger used for per-request debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

func checkBase(base string) error {
	if !strings.HasSuffix(base, "/") {
		return fmt.Errorf("%q must end with /", base)
	}
	if _, err := url.Parse(base); err != nil {
		return err
	}
	return nil
}

// --------------------------------------------------------------------
// Request options
// --------------------------------------------------------------------

// RequestOption shapes a single call made through the generic verbs or the
// resource accessors. Options are applied in order.
type RequestOption func(*api.Request)

// WithQuery appends query parameters to the endpoint.
func WithQuery(q url.Values) RequestOption {
	return func(r *api.Request) {
		if r.Query == nil {
			r.Query = url.Values{}
		}
		for k, vs := range q {
			r.Query[k] = append(r.Query[k], vs...)
		}
	}
}

// WithJSON serializes v as the request body.
func WithJSON(v any) RequestOption {
	return func(r *api.Request) { r.SetJSON(v) }
}

// WithBody sends b verbatim under the client's default Content-Type.
func WithBody(b []byte) RequestOption {
	return func(r *api.Request) { r.SetBody(b) }
}

// WithForm sends form data. The Content-Type switches to form encoding for
// this request only.
func WithForm(v url.Values) RequestOption {
	return func(r *api.Request) { r.SetForm(v) }
}

// WithHeader sets an extra header on this request, overriding defaults.
func WithHeader(key, value string) RequestOption {
	return func(r *api.Request) {
		if r.Header == nil {
			r.Header = http.Header{}
		}
		r.Header.Set(key, value)
	}
}

// WithAuthHost sends the request to the OAuth host instead of the API host.
func WithAuthHost() RequestOption {
	return func(r *api.Request) { r.AuthHost = true }
}
