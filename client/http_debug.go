package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"

	"github.com/rs/zerolog"
)

// debugTransport dumps every request and response at debug level.
//
// Enable it with WithDebugLogging(true) or EVENTBRITE_DEBUG=true / DEBUG=true.
// Bearer tokens are masked in the dump. Request bodies are not: a token
// exchange logs the client secret, so keep this out of production.
type debugTransport struct {
	base   http.RoundTripper
	logger zerolog.Logger
}

var bearerPattern = regexp.MustCompile(`(?m)^(Authorization: Bearer )\S+`)

func redact(dump []byte) string {
	return bearerPattern.ReplaceAllString(string(dump), "${1}***")
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", redact(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.logger.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether EVENTBRITE_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("EVENTBRITE_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
