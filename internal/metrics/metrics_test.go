package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	m := New()

	m.HTTPRequests.WithLabelValues("GET", "/books", "200").Inc()
	m.HTTPDuration.WithLabelValues("GET", "/books").Observe(0.01)
	m.StoreCommands.WithLabelValues("find", "success").Observe(0.002)

	expected := `
# HELP bookshelf_http_requests_total Number of HTTP requests handled, by method, route and status.
# TYPE bookshelf_http_requests_total counter
bookshelf_http_requests_total{method="GET",route="/books",status="200"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "bookshelf_http_requests_total"))

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["bookshelf_http_request_duration_seconds"])
	assert.True(t, names["bookshelf_store_command_duration_seconds"])
	assert.True(t, names["go_goroutines"])
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.HTTPRequests.WithLabelValues("GET", "/books", "200").Inc()

	assert.Equal(t, 1, testutil.CollectAndCount(a.HTTPRequests))
	assert.Equal(t, 0, testutil.CollectAndCount(b.HTTPRequests))
}
