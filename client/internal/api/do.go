package api

import (
	"context"
	"fmt"
	"net/http"
)

// Send builds and issues r against base. The response is returned unparsed.
func Send(ctx context.Context, httpClient HTTPClient, base string, r *Request, defaults http.Header) (*http.Response, error) {
	httpReq, err := NewHTTPRequest(ctx, base, r, defaults)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Endpoint, err)
	}
	return resp, nil
}
