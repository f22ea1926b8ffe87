package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gearplug/eventbrite-go/client"
	"github.com/gearplug/eventbrite-go/internal/fakeapi"
	"github.com/rs/zerolog"
)

// runCLI executes one command line against srv and returns stdout.
func runCLI(t *testing.T, srv *fakeapi.Server, args ...string) (string, error) {
	t.Helper()
	return runCLIEnv(t, srv, nil, args...)
}

// runCLIEnv is runCLI with extra environment variables applied last.
func runCLIEnv(t *testing.T, srv *fakeapi.Server, env map[string]string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"EVENTBRITE_ACCESS_TOKEN", "EVENTBRITE_DEBUG", "EVENTBRITE_LOG_FORMAT", "EVENTBRITE_LOG_LEVEL"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	t.Setenv("EVENTBRITE_HTTP_TIMEOUT", "5s")
	t.Setenv("EVENTBRITE_API_URL", srv.APIURL())
	t.Setenv("EVENTBRITE_AUTH_URL", srv.AuthURL())
	for k, v := range env {
		t.Setenv(k, v)
	}

	b := &strings.Builder{}
	root := NewRootCmd()
	root.SetOut(b)
	root.SetArgs(args)
	err := root.Execute()
	return b.String(), err
}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("output is not a JSON object: %v\n%s", err, out)
	}
	return m
}

func TestCLI_Me(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	out, err := runCLI(t, srv, "me", "--token", fakeapi.Token)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if got := decode(t, out)["name"]; got != "Fake User" {
		t.Fatalf("unexpected user: %v", got)
	}
	last, _ := srv.Last()
	if last.Path != "/v3/users/me/" {
		t.Fatalf("unexpected path %s", last.Path)
	}
}

func TestCLI_UnauthorizedWithoutToken(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	_, err := runCLI(t, srv, "organizations")
	if !errors.Is(err, client.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestCLI_ListWithQuery(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	if _, err := runCLI(t, srv, "events", "--org", "1", "--query", "status=live", "--token", fakeapi.Token); err != nil {
		t.Fatalf("events: %v", err)
	}
	last, _ := srv.Last()
	if last.Path != "/v3/organizations/1/events/" || last.Query != "status=live" {
		t.Fatalf("unexpected request %s?%s", last.Path, last.Query)
	}
}

func TestCLI_AuthURL(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	t.Setenv("EVENTBRITE_CLIENT_ID", "app-1")
	t.Setenv("EVENTBRITE_REDIRECT_URI", "http://localhost/cb")

	out, err := runCLI(t, srv, "auth-url", "--random-state")
	if err != nil {
		t.Fatalf("auth-url: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "state: ") {
		t.Fatalf("unexpected output: %q", out)
	}
	u, err := url.Parse(lines[0])
	if err != nil {
		t.Fatalf("bad url: %v", err)
	}
	q := u.Query()
	if u.Path != "/oauth/authorize" || q.Get("client_id") != "app-1" || q.Get("response_type") != "code" {
		t.Fatalf("unexpected url %s", lines[0])
	}
	if q.Get("state") != strings.TrimPrefix(lines[1], "state: ") {
		t.Fatalf("state mismatch: %s", out)
	}
	if len(srv.Requests()) != 0 {
		t.Fatalf("auth-url must not call the API")
	}
}

func TestCLI_ExchangeCode(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	out, err := runCLI(t, srv, "exchange-code", "--code", "abc")
	if err != nil {
		t.Fatalf("exchange-code: %v", err)
	}
	if decode(t, out)["access_token"] != fakeapi.Token {
		t.Fatalf("unexpected token output: %s", out)
	}
	last, _ := srv.Last()
	if ct := last.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
		t.Fatalf("token exchange content type = %q", ct)
	}
}

func TestCLI_CreateEventRejectsInvalidJSON(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	if _, err := runCLI(t, srv, "create-event", "--org", "1", "--data", "{nope", "--token", fakeapi.Token); err == nil {
		t.Fatalf("expected invalid JSON error")
	}
	if len(srv.Requests()) != 0 {
		t.Fatalf("invalid data must not be sent")
	}
}

func TestCLI_WebhookLifecycle(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	out, err := runCLI(t, srv, "create-webhook", "--org", "1", "--endpoint-url", "https://hooks.example.com/eb", "--actions", "order.placed", "--token", fakeapi.Token)
	if err != nil {
		t.Fatalf("create-webhook: %v", err)
	}
	id, _ := decode(t, out)["id"].(string)
	if id == "" {
		t.Fatalf("no webhook id in %s", out)
	}

	out, err = runCLI(t, srv, "delete-webhook", "--id", id, "--token", fakeapi.Token)
	if err != nil {
		t.Fatalf("delete-webhook: %v", err)
	}
	if strings.TrimSpace(out) != "No content" {
		t.Fatalf("unexpected delete output %q", out)
	}
}

func TestCLI_RawRequestWithForm(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	_, err := runCLI(t, srv, "request", "post", "token", "--auth-host",
		"--form", "grant_type=authorization_code", "--form", "code=xyz")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	last, _ := srv.Last()
	if last.Method != http.MethodPost || last.Path != "/oauth/token" {
		t.Fatalf("unexpected request %s %s", last.Method, last.Path)
	}
	if string(last.Body) != "code=xyz&grant_type=authorization_code" {
		t.Fatalf("unexpected body %q", last.Body)
	}
}

func TestCLI_RawRequestRejectsBadPair(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	if _, err := runCLI(t, srv, "request", "GET", "formats", "--query", "novalue"); err == nil {
		t.Fatalf("expected key=value error")
	}
}

func TestCLI_FakeMode(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	out, err := runCLI(t, srv, "--fake", "event", "--id", "1")
	if err != nil {
		t.Fatalf("event: %v", err)
	}
	if decode(t, out)["id"] != "1" {
		t.Fatalf("unexpected event %s", out)
	}
	if len(srv.Requests()) != 0 {
		t.Fatalf("--fake must not reach the configured API")
	}
	if fake != nil {
		t.Fatalf("in-process fake left running")
	}
}

func TestCLI_LargeIntegersPrintedExactly(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Override(http.MethodGet, "/v3/orders/9/", http.StatusOK, "application/json", `{"id":"9","costs":{"value":12345678901234567}}`)

	out, err := runCLI(t, srv, "order", "--id", "9", "--token", fakeapi.Token)
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	if !strings.Contains(out, `"value": 12345678901234567`) {
		t.Fatalf("integer not preserved:\n%s", out)
	}
}

func TestCLI_LogLevelFromEnvironment(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	runLevel := func(level string, args ...string) zerolog.Level {
		t.Helper()
		if _, err := runCLIEnv(t, srv, map[string]string{"EVENTBRITE_LOG_LEVEL": level}, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return zerolog.GlobalLevel()
	}

	if got := runLevel("warn", "me", "--token", fakeapi.Token); got != zerolog.WarnLevel {
		t.Fatalf("EVENTBRITE_LOG_LEVEL=warn gave %s", got)
	}
	if got := runLevel("error", "me", "--token", fakeapi.Token, "--debug"); got != zerolog.DebugLevel {
		t.Fatalf("--debug gave %s", got)
	}
}

func TestCLI_InvalidLogFormatFails(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	_, err := runCLIEnv(t, srv, map[string]string{"EVENTBRITE_LOG_FORMAT": "xml"}, "me", "--token", fakeapi.Token)
	if err == nil || !strings.Contains(err.Error(), "LOG_FORMAT") {
		t.Fatalf("expected log format error, got %v", err)
	}
	if len(srv.Requests()) != 0 {
		t.Fatalf("no request expected")
	}
}
