package handlers

import (
	"context"

	"github.com/gearplug/eventbrite-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// EventHandler exposes organization-scoped listings plus single event and
// order lookups.
type EventHandler struct {
	client *client.Client
}

func NewEventHandler(c *client.Client) *EventHandler { return &EventHandler{client: c} }

type keyedFn func(*client.Client, context.Context, string, ...client.RequestOption) (*client.Result, error)

func (eh *EventHandler) RegisterTools(s *server.MCPServer) error {
	orgTools := []struct {
		name, desc string
		fn         keyedFn
	}{
		{"list_venues", "List the venues of an organization", (*client.Client).ListVenues},
		{"list_organizers", "List the organizers of an organization", (*client.Client).ListOrganizers},
		{"list_events", "List the events of an organization", (*client.Client).ListEvents},
	}
	for _, t := range orgTools {
		opts := append([]mcp.ToolOption{
			mcp.WithDescription(t.desc),
			mcp.WithString("organization_id", mcp.Required(), mcp.Description("Organization id from list_organizations")),
		}, pagingParams()...)
		s.AddTool(mcp.NewTool(t.name, opts...), eh.keyed(t.name, "organization_id", t.fn, true))
	}

	getEvent := mcp.NewTool("get_event",
		mcp.WithDescription("Get one event by id"),
		mcp.WithString("event_id", mcp.Required(), mcp.Description("Event id")),
	)
	getOrder := mcp.NewTool("get_order",
		mcp.WithDescription("Get one order by id"),
		mcp.WithString("order_id", mcp.Required(), mcp.Description("Order id")),
	)
	s.AddTool(getEvent, eh.keyed("get_event", "event_id", (*client.Client).GetEvent, false))
	s.AddTool(getOrder, eh.keyed("get_order", "order_id", (*client.Client).GetOrder, false))
	return nil
}

// keyed builds a handler calling fn with the required string argument key.
func (eh *EventHandler) keyed(tool, key string, fn keyedFn, paged bool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString(key)
		if err != nil || id == "" {
			return mcp.NewToolResultError(key + " parameter is required"), nil
		}
		var opts []client.RequestOption
		if paged {
			opts = pageOptions(req)
		}
		return run(ctx, tool, func(e *zerolog.Event) { e.Str(key, id) }, func(ctx context.Context) (*client.Result, error) {
			return fn(eh.client, ctx, id, opts...)
		})
	}
}
