package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveRecordsRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewHTTPMetrics(registry)

	m.Observe("/api/v1/products", "GET", "200", 25*time.Millisecond)
	m.Observe("/api/v1/products", "GET", "200", 40*time.Millisecond)
	m.Observe("/api/v1/cart", "POST", "502", 10*time.Millisecond)

	count := testutil.ToFloat64(m.requests.WithLabelValues("/api/v1/products", "GET", "200"))
	require.Equal(t, float64(2), count)

	count = testutil.ToFloat64(m.requests.WithLabelValues("/api/v1/cart", "POST", "502"))
	require.Equal(t, float64(1), count)
}

func TestObserveNormalizesEmptyRoute(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewHTTPMetrics(registry)

	m.Observe("", "GET", "200", time.Millisecond)

	count := testutil.ToFloat64(m.requests.WithLabelValues("unknown", "GET", "200"))
	require.Equal(t, float64(1), count)
}

func TestNilRegistererIsInert(t *testing.T) {
	m := NewHTTPMetrics(nil)
	require.NotPanics(t, func() {
		m.Observe("/health/live", "GET", "200", time.Millisecond)
	})
}
