package client

import "github.com/gearplug/eventbrite-go/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Result is the parsed body of a non-error response.
	Result = types.Result

	// Token is the typed view of an authorization-code exchange.
	Token = types.Token

	// WebhookRequest is the body of CreateWebhook.
	WebhookRequest = types.WebhookRequest
)

// Errors re-exported in errors.go
