package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request describes one call against the API or the OAuth host.
//
// Body, JSON and Form are mutually exclusive; the last one set by a request
// option wins. Form bodies switch the Content-Type of this request only.
type Request struct {
	Method   string
	Endpoint string
	Body     []byte
	Form     url.Values
	Query    url.Values
	Header   http.Header
	AuthHost bool

	jsonBody any
	hasJSON  bool
}

// SetJSON marks v to be serialized as the request body.
func (r *Request) SetJSON(v any) {
	r.jsonBody = v
	r.hasJSON = true
	r.Body = nil
	r.Form = nil
}

// SetBody installs a raw body sent verbatim.
func (r *Request) SetBody(b []byte) {
	r.Body = b
	r.hasJSON = false
	r.jsonBody = nil
	r.Form = nil
}

// SetForm installs form data, encoded as application/x-www-form-urlencoded.
func (r *Request) SetForm(v url.Values) {
	r.Form = v
	r.Body = nil
	r.hasJSON = false
	r.jsonBody = nil
}

// URL concatenates base and endpoint without escaping or validation, then
// appends the query string if any.
func (r *Request) URL(base string) string {
	u := base + r.Endpoint
	if len(r.Query) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + r.Query.Encode()
}

// NewHTTPRequest builds the *http.Request for r. defaults are copied first,
// then per-request headers override them.
func NewHTTPRequest(ctx context.Context, base string, r *Request, defaults http.Header) (*http.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body io.Reader
	var contentType string
	switch {
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = ContentTypeForm
	case r.hasJSON:
		b, err := json.Marshal(r.jsonBody)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", r.Method, r.Endpoint, err)
		}
		body = bytes.NewReader(b)
		contentType = ContentTypeJSON
	case r.Body != nil:
		body = bytes.NewReader(r.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.Method, r.URL(base), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range defaults {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, vs := range r.Header {
		httpReq.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	return httpReq, nil
}
