package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gearplug/eventbrite-go/internal/config"
	"github.com/gearplug/eventbrite-go/internal/fakeapi"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var allTools = []string{
	"get_current_user", "list_organizations",
	"list_categories", "list_subcategories", "list_formats",
	"list_venues", "list_organizers", "list_events", "get_event", "get_order",
	"list_webhooks", "create_webhook", "delete_webhook",
}

func newTestServer(t *testing.T, fake *fakeapi.Server, token string) *server.MCPServer {
	t.Helper()
	cfg := config.NewForTesting(fake.Root())
	cfg.AccessToken = token
	c, err := cfg.NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	s, err := NewServer(cfg, c)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func initClient(t *testing.T, ctx context.Context, tr transport.Interface) *client.Client {
	t.Helper()
	if err := tr.Start(ctx); err != nil {
		t.Fatalf("start transport: %v", err)
	}
	t.Cleanup(func() { _ = tr.Close() })

	c := client.NewClient(tr)
	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: "2024-11-05",
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo:      mcp.Implementation{Name: "test-client", Version: "1.0.0"},
		},
	})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return c
}

func callTool(t *testing.T, ctx context.Context, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := c.CallTool(ctx, mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}})
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	if len(res.Content) == 0 {
		t.Fatalf("%s: empty content", name)
	}
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", res.Content[0])
	}
	return tc.Text
}

func TestMCPServer_InProcess(t *testing.T) {
	fake := fakeapi.New()
	defer fake.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := initClient(t, ctx, transport.NewInProcessTransport(newTestServer(t, fake, fakeapi.Token)))

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("tools/list: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range allTools {
		if !names[want] {
			t.Errorf("tool %q not registered", want)
		}
	}

	res := callTool(t, ctx, c, "get_event", map[string]any{"event_id": "1"})
	if res.IsError {
		t.Fatalf("get_event error: %s", text(t, res))
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(text(t, res)), &ev); err != nil || ev["id"] != "1" {
		t.Fatalf("unexpected event %s (%v)", text(t, res), err)
	}

	res = callTool(t, ctx, c, "list_events", map[string]any{"organization_id": "1", "page": 2})
	if res.IsError {
		t.Fatalf("list_events error: %s", text(t, res))
	}
	if last, _ := fake.Last(); last.Query != "page=2" {
		t.Fatalf("page not forwarded: %q", last.Query)
	}

	res = callTool(t, ctx, c, "create_webhook", map[string]any{
		"organization_id": "1", "endpoint_url": "https://hooks.example.com", "actions": "order.placed",
	})
	var wh map[string]any
	if err := json.Unmarshal([]byte(text(t, res)), &wh); err != nil {
		t.Fatalf("create_webhook output: %v", err)
	}
	res = callTool(t, ctx, c, "delete_webhook", map[string]any{"webhook_id": wh["id"]})
	if res.IsError || !strings.Contains(text(t, res), "no content") {
		t.Fatalf("delete_webhook: %s", text(t, res))
	}
}

func TestMCPServer_AdapterErrorsBecomeToolErrors(t *testing.T) {
	fake := fakeapi.New()
	defer fake.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := initClient(t, ctx, transport.NewInProcessTransport(newTestServer(t, fake, "")))

	res := callTool(t, ctx, c, "get_current_user", nil)
	if !res.IsError || !strings.Contains(text(t, res), "Unauthorized") {
		t.Fatalf("expected unauthorized tool error, got %s", text(t, res))
	}

	res = callTool(t, ctx, c, "get_order", map[string]any{})
	if !res.IsError || !strings.Contains(text(t, res), "order_id") {
		t.Fatalf("expected missing argument error, got %s", text(t, res))
	}
	if len(fake.Requests()) != 1 {
		t.Fatalf("missing argument must not reach the API")
	}
}

func TestMCPServer_StreamableHTTP(t *testing.T) {
	fake := fakeapi.New()
	defer fake.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	httpSrv := httptest.NewServer(newHTTPHandler(newStreamableServer(newTestServer(t, fake, fakeapi.Token))))
	defer httpSrv.Close()

	resp, err := http.Get(httpSrv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status %d", resp.StatusCode)
	}

	tr, err := transport.NewStreamableHTTP(httpSrv.URL + "/mcp")
	if err != nil {
		t.Fatalf("http transport: %v", err)
	}
	c := initClient(t, ctx, tr)

	res := callTool(t, ctx, c, "list_formats", nil)
	if res.IsError {
		t.Fatalf("list_formats error: %s", text(t, res))
	}
	if !strings.Contains(text(t, res), "Conference") {
		t.Fatalf("unexpected formats %s", text(t, res))
	}
}

func TestServeHTTP_ShutsDownOnCancel(t *testing.T) {
	fake := fakeapi.New()
	defer fake.Close()

	cfg := config.NewForTesting(fake.Root())
	s := newTestServer(t, fake, fakeapi.Token)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveHTTP(ctx, cfg, s) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveHTTP: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("serveHTTP did not return after cancel")
	}
}
