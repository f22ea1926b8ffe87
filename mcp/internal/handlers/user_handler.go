package handlers

import (
	"context"

	"github.com/gearplug/eventbrite-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// UserHandler exposes the token owner and their organizations.
type UserHandler struct {
	client *client.Client
}

// NewUserHandler creates a new user handler instance.
func NewUserHandler(client *client.Client) *UserHandler {
	return &UserHandler{
		client: client,
	}
}

// RegisterTools registers the user tools with the MCP server.
func (uh *UserHandler) RegisterTools(s *server.MCPServer) error {
	me := mcp.NewTool("get_current_user",
		mcp.WithDescription("Get the Eventbrite user that owns the configured access token"),
	)
	orgs := mcp.NewTool("list_organizations",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the organizations of the current user; their ids scope venues, events and webhooks"),
		}, pagingParams()...)...,
	)
	s.AddTool(me, uh.handleGetCurrentUser)
	s.AddTool(orgs, uh.handleListOrganizations)
	return nil
}

func (uh *UserHandler) handleGetCurrentUser(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return run(ctx, "get_current_user", nil, func(ctx context.Context) (*client.Result, error) {
		return uh.client.GetCurrentUser(ctx)
	})
}

func (uh *UserHandler) handleListOrganizations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := pageOptions(req)
	return run(ctx, "list_organizations", nil, func(ctx context.Context) (*client.Result, error) {
		return uh.client.GetUserOrganizations(ctx, opts...)
	})
}
