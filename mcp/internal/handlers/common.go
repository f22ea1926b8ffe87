package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gearplug/eventbrite-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// run calls fn, logs the outcome and converts it into a tool result. Adapter
// errors become tool errors rather than protocol errors.
func run(ctx context.Context, tool string, fields func(*zerolog.Event), fn func(context.Context) (*client.Result, error)) (*mcp.CallToolResult, error) {
	ev := log.Debug()
	if fields != nil {
		fields(ev)
	}
	ev.Msg(tool + " invoked")

	start := time.Now()
	res, err := fn(ctx)
	elapsed := time.Since(start)
	if err != nil {
		le := log.Error().Err(err).Dur("elapsed", elapsed)
		if k := client.KindOf(err); k != 0 {
			le = le.Stringer("kind", k)
		}
		le.Msg(tool + " failed")
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err)), nil
	}

	log.Debug().Dur("elapsed", elapsed).Msg(tool + " completed")
	return resultText(res), nil
}

func resultText(res *client.Result) *mcp.CallToolResult {
	if res == nil {
		return mcp.NewToolResultText(`{"status":"no content"}`)
	}
	if !res.JSON {
		return mcp.NewToolResultText(res.Text())
	}
	b, err := json.Marshal(res.Value)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

// pageOptions maps the optional paging arguments of list tools to query
// parameters.
func pageOptions(req mcp.CallToolRequest) []client.RequestOption {
	args := req.GetArguments()
	q := url.Values{}
	var page int
	switch p := args["page"].(type) {
	case float64:
		page = int(p)
	case int:
		page = p
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if c, ok := args["continuation"].(string); ok && c != "" {
		q.Set("continuation", c)
	}
	if len(q) == 0 {
		return nil
	}
	return []client.RequestOption{client.WithQuery(q)}
}

func pagingParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("page", mcp.Description("Page number, starting at 1")),
		mcp.WithString("continuation", mcp.Description("Continuation token from a previous page")),
	}
}

func optionalString(req mcp.CallToolRequest, key string) string {
	if v, ok := req.GetArguments()[key].(string); ok {
		return v
	}
	return ""
}
