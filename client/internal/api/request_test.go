package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestRequestURL_ConcatenatesVerbatim(t *testing.T) {
	t.Parallel()
	r := &Request{Method: http.MethodGet, Endpoint: "organizations/org 1/events/"}
	if got := r.URL("https://www.eventbriteapi.com/v3/"); got != "https://www.eventbriteapi.com/v3/organizations/org 1/events/" {
		t.Fatalf("URL = %q", got)
	}

	r.Query = url.Values{"status": {"live"}}
	if got := r.URL("https://x/v3/"); got != "https://x/v3/organizations/org 1/events/?status=live" {
		t.Fatalf("URL with query = %q", got)
	}

	r2 := &Request{Endpoint: "events/?expand=venue", Query: url.Values{"page": {"2"}}}
	if got := r2.URL("https://x/v3/"); got != "https://x/v3/events/?expand=venue&page=2" {
		t.Fatalf("URL with existing query = %q", got)
	}
}

func TestNewHTTPRequest_HeadersAndBodies(t *testing.T) {
	t.Parallel()
	defaults := http.Header{
		"Content-Type":  {ContentTypeJSON},
		"Accept":        {ContentTypeJSON},
		"Authorization": {"Bearer abc"},
	}

	r := &Request{Method: http.MethodPost, Endpoint: "token"}
	r.SetForm(url.Values{"code": {"x"}})
	req, err := NewHTTPRequest(context.Background(), "https://auth/", r, defaults)
	if err != nil {
		t.Fatalf("NewHTTPRequest: %v", err)
	}
	if req.Header.Get("Content-Type") != ContentTypeForm {
		t.Fatalf("form request content-type = %q", req.Header.Get("Content-Type"))
	}
	if req.Header.Get("Authorization") != "Bearer abc" || req.Header.Get("Accept") != ContentTypeJSON {
		t.Fatalf("defaults not applied: %v", req.Header)
	}
	b, _ := io.ReadAll(req.Body)
	if string(b) != "code=x" {
		t.Fatalf("form body = %q", b)
	}
	// defaults map must not be mutated by per-request overrides
	if defaults.Get("Content-Type") != ContentTypeJSON {
		t.Fatalf("defaults mutated: %v", defaults)
	}

	r = &Request{Method: http.MethodPost, Endpoint: "organizations/1/events/", Header: http.Header{"x-trace": {"t1"}}}
	r.SetJSON(map[string]any{"event": map[string]any{"currency": "USD"}})
	req, err = NewHTTPRequest(context.Background(), "https://api/", r, defaults)
	if err != nil {
		t.Fatalf("NewHTTPRequest: %v", err)
	}
	var got map[string]any
	if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
		t.Fatalf("json body: %v", err)
	}
	if _, ok := got["event"]; !ok {
		t.Fatalf("json body = %v", got)
	}
	if req.Header.Get("X-Trace") != "t1" {
		t.Fatalf("per-request header missing")
	}
}

func TestNewHTTPRequest_LastBodyWins(t *testing.T) {
	t.Parallel()
	r := &Request{Method: http.MethodPut, Endpoint: "x"}
	r.SetJSON(map[string]string{"a": "b"})
	r.SetBody([]byte("raw"))
	req, err := NewHTTPRequest(context.Background(), "https://api/", r, http.Header{"Content-Type": {ContentTypeJSON}})
	if err != nil {
		t.Fatalf("NewHTTPRequest: %v", err)
	}
	b, _ := io.ReadAll(req.Body)
	if string(b) != "raw" {
		t.Fatalf("body = %q", b)
	}
}

func TestNewHTTPRequest_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewHTTPRequest(ctx, "https://api/", &Request{Method: http.MethodGet}, nil); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestSendThenParse_RoundTrip(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/v3/users/me/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","emails":[]}`))
	}))
	defer srv.Close()

	resp, err := Send(context.Background(), srv.Client(), srv.URL+"/v3/", &Request{Method: http.MethodGet, Endpoint: "users/me/"}, nil)
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	res, err := Parse(resp)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if m, ok := res.Object(); !ok || m["id"] != "1" {
		t.Fatalf("unexpected payload: %#v", res.Value)
	}
}

func TestSend_NetworkError(t *testing.T) {
	t.Parallel()
	hc := &http.Client{Transport: &errRT{}}
	resp, err := Send(context.Background(), hc, "http://example.invalid/", &Request{Method: http.MethodGet, Endpoint: "formats"}, nil)
	if err == nil || resp != nil {
		t.Fatal("expected transport error")
	}
	if !strings.Contains(err.Error(), "GET formats") {
		t.Fatalf("error should name the call: %v", err)
	}
}
