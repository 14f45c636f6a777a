package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	require.NoError(t, err)

	m.Observe("GET", "/api/devices", "200", 10*time.Millisecond)
	m.Observe("GET", "/api/devices", "200", 20*time.Millisecond)
	m.ChangeEvent("devices", "INSERT")
	m.ViewFallback("devices_view")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/devices", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChangeEventsTotal.WithLabelValues("devices", "INSERT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ViewFallbacksTotal.WithLabelValues("devices_view")))

	_, err = NewHTTPMetrics(reg)
	assert.Error(t, err, "повторная регистрация должна вернуть ошибку")
}
