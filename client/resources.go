package client

import (
	"context"
	"fmt"

	"github.com/gearplug/eventbrite-go/client/internal/types"
)

// --------------------------------------------------------------------
// Users
// --------------------------------------------------------------------

// GetCurrentUser returns the user owning the bearer token.
func (c *Client) GetCurrentUser(ctx context.Context, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, "users/me/", opts...)
}

// GetUserOrganizations lists the organizations of the current user.
func (c *Client) GetUserOrganizations(ctx context.Context, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, "users/me/organizations/", opts...)
}

// --------------------------------------------------------------------
// Catalog
// --------------------------------------------------------------------

// ListCategories lists event categories (GET categories).
func (c *Client) ListCategories(ctx context.Context, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, "categories", opts...)
}

// ListSubcategories lists event subcategories (GET subcategories).
func (c *Client) ListSubcategories(ctx context.Context, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, "subcategories", opts...)
}

// ListFormats lists event formats (GET formats).
func (c *Client) ListFormats(ctx context.Context, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, "formats", opts...)
}

// --------------------------------------------------------------------
// Organizations
// --------------------------------------------------------------------

// ListVenues lists the venues of an organization
// (GET organizations/{id}/venues/).
func (c *Client) ListVenues(ctx context.Context, organizationID string, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, fmt.Sprintf("organizations/%s/venues/", organizationID), opts...)
}

// ListOrganizers lists the organizers of an organization
// (GET organizations/{id}/organizers/).
func (c *Client) ListOrganizers(ctx context.Context, organizationID string, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, fmt.Sprintf("organizations/%s/organizers/", organizationID), opts...)
}

// ListEvents lists the events of an organization
// (GET organizations/{id}/events/).
func (c *Client) ListEvents(ctx context.Context, organizationID string, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, fmt.Sprintf("organizations/%s/events/", organizationID), opts...)
}

// --------------------------------------------------------------------
// Events and orders
// --------------------------------------------------------------------

// GetEvent returns one event (GET events/{id}/).
func (c *Client) GetEvent(ctx context.Context, eventID string, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, fmt.Sprintf("events/%s/", eventID), opts...)
}

// CreateEvent posts data, serialized as JSON, as a new event of the
// organization. data is typically {"event": {...}}.
func (c *Client) CreateEvent(ctx context.Context, organizationID string, data any) (*Result, error) {
	return c.Post(ctx, fmt.Sprintf("organizations/%s/events/", organizationID), WithJSON(data))
}

// GetOrder returns one order (GET orders/{id}/).
func (c *Client) GetOrder(ctx context.Context, orderID string, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, fmt.Sprintf("orders/%s/", orderID), opts...)
}

// --------------------------------------------------------------------
// Webhooks
// --------------------------------------------------------------------

// ListWebhooks lists the webhooks of an organization
// (GET organizations/{id}/webhooks/).
func (c *Client) ListWebhooks(ctx context.Context, organizationID string, opts ...RequestOption) (*Result, error) {
	return c.Get(ctx, fmt.Sprintf("organizations/%s/webhooks/", organizationID), opts...)
}

// CreateWebhook registers endpointURL for the comma separated actions. An
// empty eventID registers an organization-wide webhook and is sent as "".
func (c *Client) CreateWebhook(ctx context.Context, organizationID, endpointURL, actions, eventID string) (*Result, error) {
	body := types.WebhookRequest{EndpointURL: endpointURL, Actions: actions, EventID: eventID}
	return c.Post(ctx, fmt.Sprintf("organizations/%s/webhooks/", organizationID), WithJSON(body))
}

// DeleteWebhook removes a webhook (DELETE webhooks/{id}/). A 204 answer
// yields a nil Result.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) (*Result, error) {
	return c.Delete(ctx, fmt.Sprintf("webhooks/%s/", webhookID))
}
