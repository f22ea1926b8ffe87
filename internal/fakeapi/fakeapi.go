// Package fakeapi is an in-process stand-in for the Eventbrite API and OAuth
// hosts. It serves every endpoint the client knows under /v3/ and /oauth/,
// keeps created events and webhooks in memory, and records each request.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gearplug/eventbrite-go/internal/recovery"
	"github.com/gorilla/mux"
)

// Token is the access token the fake hands out and accepts.
const Token = "fake-access-token"

// Request is one request seen by the fake.
type Request struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

type override struct {
	status      int
	contentType string
	body        string
}

// Server is a running fake. Root() is the value to hand to the client as the
// common prefix of both hosts.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []Request
	overrides map[string]override
	events    map[string]map[string]any
	webhooks  map[string]map[string]any
	nextID    int
}

// New starts a fake on a loopback port. Close it when done.
func New() *Server {
	s := &Server{
		overrides: map[string]override{},
		events:    map[string]map[string]any{},
		webhooks:  map[string]map[string]any{},
		nextID:    1000,
	}
	s.events["1"] = map[string]any{"id": "1", "name": map[string]any{"text": "Launch party"}, "status": "live", "organization_id": "1"}
	s.Server = httptest.NewServer(s.Handler())
	return s
}

// Root is the URL prefix of both hosts, e.g. http://127.0.0.1:1234.
func (s *Server) Root() string { return s.URL }

// APIURL is the base to pass to client.WithAPIURL.
func (s *Server) APIURL() string { return s.URL + "/v3/" }

// AuthURL is the base to pass to client.WithAuthURL.
func (s *Server) AuthURL() string { return s.URL + "/oauth/" }

// Override makes method+path answer status with body until cleared.
func (s *Server) Override(method, path string, status int, contentType, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = override{status: status, contentType: contentType, body: body}
}

// ClearOverrides removes all scripted responses.
func (s *Server) ClearOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = map[string]override{}
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request, or false when none arrived.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Handler is the router wrapped so that recording and scripted responses
// apply to every path, matched or not.
func (s *Server) Handler() http.Handler {
	return recovery.Middleware(s.record(s.scripted(s.Router())))
}

// Router builds the mux with the fake's endpoints.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/oauth/token", s.handleToken).Methods(http.MethodPost)

	v3 := r.PathPrefix("/v3").Subrouter()
	v3.Use(s.requireBearer)
	v3.HandleFunc("/users/me/", s.static(map[string]any{"id": "1", "name": "Fake User", "emails": []any{map[string]any{"email": "fake@example.com", "primary": true}}})).Methods(http.MethodGet)
	v3.HandleFunc("/users/me/organizations/", s.static(page("organizations", map[string]any{"id": "1", "name": "Fake Org"}))).Methods(http.MethodGet)
	v3.HandleFunc("/categories", s.static(page("categories", map[string]any{"id": "103", "name": "Music"}))).Methods(http.MethodGet)
	v3.HandleFunc("/subcategories", s.static(page("subcategories", map[string]any{"id": "3001", "name": "Alternative"}))).Methods(http.MethodGet)
	v3.HandleFunc("/formats", s.static(page("formats", map[string]any{"id": "1", "name": "Conference"}))).Methods(http.MethodGet)
	v3.HandleFunc("/organizations/{org}/venues/", s.static(page("venues", map[string]any{"id": "10", "name": "Main Hall"}))).Methods(http.MethodGet)
	v3.HandleFunc("/organizations/{org}/organizers/", s.static(page("organizers", map[string]any{"id": "20", "name": "Fake Organizer"}))).Methods(http.MethodGet)
	v3.HandleFunc("/organizations/{org}/events/", s.handleListEvents).Methods(http.MethodGet)
	v3.HandleFunc("/organizations/{org}/events/", s.handleCreateEvent).Methods(http.MethodPost)
	v3.HandleFunc("/organizations/{org}/webhooks/", s.handleListWebhooks).Methods(http.MethodGet)
	v3.HandleFunc("/organizations/{org}/webhooks/", s.handleCreateWebhook).Methods(http.MethodPost)
	v3.HandleFunc("/events/{id}/", s.handleGetEvent).Methods(http.MethodGet)
	v3.HandleFunc("/orders/{id}/", s.handleGetOrder).Methods(http.MethodGet)
	v3.HandleFunc("/webhooks/{id}/", s.handleDeleteWebhook).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, apiError("NOT_FOUND", "The path you requested does not exist."))
	})
	return r
}

// --------------------------------------------------------------------
// Middleware
// --------------------------------------------------------------------

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(b)))
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Header: r.Header.Clone(), Body: b})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) scripted(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		o, ok := s.overrides[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if o.contentType != "" {
			w.Header().Set("Content-Type", o.contentType)
		}
		w.WriteHeader(o.status)
		_, _ = io.WriteString(w, o.body)
	})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, apiError("NO_AUTH", "An OAuth token is required for all requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --------------------------------------------------------------------
// Handlers
// --------------------------------------------------------------------

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_request", "error_description": err.Error()})
		return
	}
	if r.PostForm.Get("grant_type") != "authorization_code" || r.PostForm.Get("code") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant", "error_description": "code is invalid or expired"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"access_token": Token, "token_type": "bearer"})
}

func (s *Server) static(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, v) }
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	org := mux.Vars(r)["org"]
	s.mu.Lock()
	out := []any{}
	for _, ev := range s.events {
		if ev["organization_id"] == org {
			out = append(out, ev)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pageOf("events", out))
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Event map[string]any `json:"event"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Event == nil {
		writeJSON(w, http.StatusBadRequest, apiError("ARGUMENTS_ERROR", "There are errors with your arguments: event - MISSING"))
		return
	}
	s.mu.Lock()
	id := s.newID()
	ev := body.Event
	ev["id"] = id
	ev["organization_id"] = mux.Vars(r)["org"]
	s.events[id] = ev
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ev, ok := s.events[mux.Vars(r)["id"]]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError("NOT_FOUND", "The event you requested does not exist."))
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": "placed", "event_id": "1"})
}

func (s *Server) handleListWebhooks(w http.ResponseWriter, r *http.Request) {
	org := mux.Vars(r)["org"]
	s.mu.Lock()
	out := []any{}
	for _, wh := range s.webhooks {
		if wh["organization_id"] == org {
			out = append(out, wh)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pageOf("webhooks", out))
}

func (s *Server) handleCreateWebhook(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EndpointURL *string `json:"endpoint_url"`
		Actions     *string `json:"actions"`
		EventID     *string `json:"event_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.EndpointURL == nil || *body.EndpointURL == "" {
		writeJSON(w, http.StatusBadRequest, apiError("ARGUMENTS_ERROR", "There are errors with your arguments: endpoint_url - MISSING"))
		return
	}
	wh := map[string]any{"endpoint_url": *body.EndpointURL, "organization_id": mux.Vars(r)["org"]}
	if body.Actions != nil {
		wh["actions"] = strings.Split(*body.Actions, ",")
	}
	if body.EventID != nil {
		wh["event_id"] = *body.EventID
	}
	s.mu.Lock()
	id := s.newID()
	wh["id"] = id
	s.webhooks[id] = wh
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, wh)
}

func (s *Server) handleDeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	_, ok := s.webhooks[id]
	delete(s.webhooks, id)
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError("NOT_FOUND", fmt.Sprintf("webhook %s does not exist", id)))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// newID must be called with s.mu held.
func (s *Server) newID() string {
	s.nextID++
	return strconv.Itoa(s.nextID)
}

// --------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------

func page(key string, items ...any) map[string]any {
	return pageOf(key, items)
}

func pageOf(key string, items []any) map[string]any {
	return map[string]any{
		key: items,
		"pagination": map[string]any{
			"object_count":   len(items),
			"page_number":    1,
			"page_size":      50,
			"page_count":     1,
			"has_more_items": false,
		},
	}
}

func apiError(code, description string) map[string]any {
	return map[string]any{"error": code, "error_description": description}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
