package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gearplug/eventbrite-go/client"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newAuthURLCmd() *cobra.Command {
	var state string
	var randomState bool

	cmd := &cobra.Command{
		Use:   "auth-url",
		Short: "Print the OAuth authorization URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if randomState {
				state = uuid.NewString()
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, c.AuthorizationURL(state))
			if randomState {
				fmt.Fprintf(out, "state: %s\n", state)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "Opaque state echoed back to the redirect URI")
	cmd.Flags().BoolVar(&randomState, "random-state", false, "Generate a random state")
	cmd.MarkFlagsMutuallyExclusive("state", "random-state")

	return cmd
}

func newExchangeCodeCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "exchange-code",
		Short: "Exchange an authorization code for an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, "exchange code", func(ctx context.Context, c *client.Client) (*client.Result, error) {
				return c.GetAccessToken(ctx, code)
			})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code (required)")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

type listCall func(*client.Client, context.Context, ...client.RequestOption) (*client.Result, error)

func simpleCmds() []*cobra.Command {
	defs := []struct {
		use, short string
		fn         listCall
	}{
		{"me", "Show the current user", (*client.Client).GetCurrentUser},
		{"organizations", "List the current user's organizations", (*client.Client).GetUserOrganizations},
		{"categories", "List event categories", (*client.Client).ListCategories},
		{"subcategories", "List event subcategories", (*client.Client).ListSubcategories},
		{"formats", "List event formats", (*client.Client).ListFormats},
	}

	cmds := make([]*cobra.Command, 0, len(defs))
	for _, d := range defs {
		var query []string
		cmd := &cobra.Command{
			Use:   d.use,
			Short: d.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				opts, err := queryOption(query)
				if err != nil {
					return err
				}
				return call(cmd, d.use, func(ctx context.Context, c *client.Client) (*client.Result, error) {
					return d.fn(c, ctx, opts...)
				})
			},
		}
		cmd.Flags().StringArrayVar(&query, "query", nil, "Query parameter key=value (repeatable)")
		cmds = append(cmds, cmd)
	}
	return cmds
}

type keyedCall func(*client.Client, context.Context, string, ...client.RequestOption) (*client.Result, error)

func orgCmds() []*cobra.Command {
	return keyedCmds("org", "Organization ID (required)", []keyedDef{
		{"venues", "List an organization's venues", (*client.Client).ListVenues},
		{"organizers", "List an organization's organizers", (*client.Client).ListOrganizers},
		{"events", "List an organization's events", (*client.Client).ListEvents},
		{"webhooks", "List an organization's webhooks", (*client.Client).ListWebhooks},
	})
}

func idCmds() []*cobra.Command {
	return append(
		keyedCmds("id", "Event ID (required)", []keyedDef{{"event", "Show an event", (*client.Client).GetEvent}}),
		keyedCmds("id", "Order ID (required)", []keyedDef{{"order", "Show an order", (*client.Client).GetOrder}})...,
	)
}

type keyedDef struct {
	use, short string
	fn         keyedCall
}

func keyedCmds(flag, usage string, defs []keyedDef) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(defs))
	for _, d := range defs {
		var key string
		var query []string
		cmd := &cobra.Command{
			Use:   d.use,
			Short: d.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				opts, err := queryOption(query)
				if err != nil {
					return err
				}
				return call(cmd, d.use, func(ctx context.Context, c *client.Client) (*client.Result, error) {
					return d.fn(c, ctx, key, opts...)
				})
			},
		}
		cmd.Flags().StringVar(&key, flag, "", usage)
		cmd.Flags().StringArrayVar(&query, "query", nil, "Query parameter key=value (repeatable)")
		_ = cmd.MarkFlagRequired(flag)
		cmds = append(cmds, cmd)
	}
	return cmds
}

func newCreateEventCmd() *cobra.Command {
	var org, data string

	cmd := &cobra.Command{
		Use:   "create-event",
		Short: "Create an event from a JSON document",
		Long:  `The document is sent as is, e.g. {"event": {"name": {"html": "Launch"}, ...}}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(data)) {
				return fmt.Errorf("--data is not valid JSON")
			}
			return call(cmd, "create event", func(ctx context.Context, c *client.Client) (*client.Result, error) {
				return c.CreateEvent(ctx, org, json.RawMessage(data))
			})
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Organization ID (required)")
	cmd.Flags().StringVar(&data, "data", "", "Event JSON (required)")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func newCreateWebhookCmd() *cobra.Command {
	var org, endpointURL, actions, eventID string

	cmd := &cobra.Command{
		Use:   "create-webhook",
		Short: "Register a webhook for an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, "create webhook", func(ctx context.Context, c *client.Client) (*client.Result, error) {
				return c.CreateWebhook(ctx, org, endpointURL, actions, eventID)
			})
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Organization ID (required)")
	cmd.Flags().StringVar(&endpointURL, "endpoint-url", "", "URL receiving the webhook (required)")
	cmd.Flags().StringVar(&actions, "actions", "", "Comma separated actions, e.g. order.placed,event.published (required)")
	cmd.Flags().StringVar(&eventID, "event-id", "", "Restrict to one event (optional)")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("endpoint-url")
	_ = cmd.MarkFlagRequired("actions")

	return cmd
}

func newDeleteWebhookCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete-webhook",
		Short: "Delete a webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, "delete webhook", func(ctx context.Context, c *client.Client) (*client.Result, error) {
				return c.DeleteWebhook(ctx, id)
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Webhook ID (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newRequestCmd() *cobra.Command {
	var data string
	var form, query []string
	var authHost bool

	cmd := &cobra.Command{
		Use:   "request METHOD ENDPOINT",
		Short: "Send an arbitrary request relative to the API (or OAuth) base",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])

			var opts []client.RequestOption
			if data != "" {
				opts = append(opts, client.WithBody([]byte(data)))
			}
			if len(form) > 0 {
				f, err := parsePairs("form", form)
				if err != nil {
					return err
				}
				opts = append(opts, client.WithForm(f))
			}
			q, err := queryOption(query)
			if err != nil {
				return err
			}
			opts = append(opts, q...)
			if authHost {
				opts = append(opts, client.WithAuthHost())
			}

			return call(cmd, "request", func(ctx context.Context, c *client.Client) (*client.Result, error) {
				return c.Do(ctx, method, args[1], opts...)
			})
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Raw request body")
	cmd.Flags().StringArrayVar(&form, "form", nil, "Form field key=value (repeatable)")
	cmd.Flags().StringArrayVar(&query, "query", nil, "Query parameter key=value (repeatable)")
	cmd.Flags().BoolVar(&authHost, "auth-host", false, "Send to the OAuth host")
	cmd.MarkFlagsMutuallyExclusive("data", "form")

	return cmd
}
