package handlers

import (
	"context"

	"github.com/gearplug/eventbrite-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CatalogHandler exposes the fixed lookup lists: categories, subcategories
// and formats.
type CatalogHandler struct {
	client *client.Client
}

func NewCatalogHandler(c *client.Client) *CatalogHandler { return &CatalogHandler{client: c} }

func (ch *CatalogHandler) RegisterTools(s *server.MCPServer) error {
	tools := []struct {
		name, desc string
		fn         func(*client.Client, context.Context, ...client.RequestOption) (*client.Result, error)
	}{
		{"list_categories", "List Eventbrite event categories", (*client.Client).ListCategories},
		{"list_subcategories", "List Eventbrite event subcategories", (*client.Client).ListSubcategories},
		{"list_formats", "List Eventbrite event formats", (*client.Client).ListFormats},
	}
	for _, t := range tools {
		tool := mcp.NewTool(t.name, append([]mcp.ToolOption{mcp.WithDescription(t.desc)}, pagingParams()...)...)
		s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			opts := pageOptions(req)
			return run(ctx, t.name, nil, func(ctx context.Context) (*client.Result, error) {
				return t.fn(ch.client, ctx, opts...)
			})
		})
	}
	return nil
}
