package client

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountRequestsAndAPIErrors(t *testing.T) {
	s := newStubAPI(t)
	c := newTestClient(t, s)
	host := mustHost(t, s.URL)

	okBefore := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, host, "200"))
	unauthBefore := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, host, "401"))
	kindBefore := testutil.ToFloat64(apiErrorsTotal.WithLabelValues(KindUnauthorized.String()))

	_, err := c.ListFormats(context.Background())
	require.NoError(t, err)

	s.respond(http.StatusUnauthorized, `{"error":"NO_AUTH"}`)
	_, err = c.ListFormats(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	require.Equal(t, okBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, host, "200")))
	require.Equal(t, unauthBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, host, "401")))
	require.Equal(t, kindBefore+1, testutil.ToFloat64(apiErrorsTotal.WithLabelValues(KindUnauthorized.String())))
}

func mustHost(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Host
}
