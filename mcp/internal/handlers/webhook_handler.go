package handlers

import (
	"context"

	"github.com/gearplug/eventbrite-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// WebhookHandler manages organization webhooks.
type WebhookHandler struct {
	client *client.Client
}

func NewWebhookHandler(c *client.Client) *WebhookHandler { return &WebhookHandler{client: c} }

func (wh *WebhookHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_webhooks",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the webhooks of an organization"),
			mcp.WithString("organization_id", mcp.Required(), mcp.Description("Organization id")),
		}, pagingParams()...)...,
	)
	create := mcp.NewTool("create_webhook",
		mcp.WithDescription("Register a webhook; returns the created webhook including its id"),
		mcp.WithString("organization_id", mcp.Required(), mcp.Description("Organization id")),
		mcp.WithString("endpoint_url", mcp.Required(), mcp.Description("URL that receives the callbacks")),
		mcp.WithString("actions", mcp.Required(), mcp.Description("Comma separated actions, e.g. order.placed,event.published")),
		mcp.WithString("event_id", mcp.Description("Restrict to one event; omit for the whole organization")),
	)
	del := mcp.NewTool("delete_webhook",
		mcp.WithDescription("Delete a webhook by id"),
		mcp.WithString("webhook_id", mcp.Required(), mcp.Description("Webhook id")),
	)
	s.AddTool(list, wh.handleList)
	s.AddTool(create, wh.handleCreate)
	s.AddTool(del, wh.handleDelete)
	return nil
}

func (wh *WebhookHandler) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org, err := req.RequireString("organization_id")
	if err != nil || org == "" {
		return mcp.NewToolResultError("organization_id parameter is required"), nil
	}
	opts := pageOptions(req)
	return run(ctx, "list_webhooks", func(e *zerolog.Event) { e.Str("organization_id", org) }, func(ctx context.Context) (*client.Result, error) {
		return wh.client.ListWebhooks(ctx, org, opts...)
	})
}

func (wh *WebhookHandler) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	org, err := req.RequireString("organization_id")
	if err != nil || org == "" {
		return mcp.NewToolResultError("organization_id parameter is required"), nil
	}
	endpointURL, err := req.RequireString("endpoint_url")
	if err != nil || endpointURL == "" {
		return mcp.NewToolResultError("endpoint_url parameter is required"), nil
	}
	actions, err := req.RequireString("actions")
	if err != nil {
		return mcp.NewToolResultError("actions parameter is required"), nil
	}
	eventID := optionalString(req, "event_id")

	fields := func(e *zerolog.Event) {
		e.Str("organization_id", org).Str("endpoint_url", endpointURL).Str("actions", actions).Str("event_id", eventID)
	}
	return run(ctx, "create_webhook", fields, func(ctx context.Context) (*client.Result, error) {
		return wh.client.CreateWebhook(ctx, org, endpointURL, actions, eventID)
	})
}

func (wh *WebhookHandler) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("webhook_id")
	if err != nil || id == "" {
		return mcp.NewToolResultError("webhook_id parameter is required"), nil
	}
	return run(ctx, "delete_webhook", func(e *zerolog.Event) { e.Str("webhook_id", id) }, func(ctx context.Context) (*client.Result, error) {
		return wh.client.DeleteWebhook(ctx, id)
	})
}
