package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/warehouse/totals/", 200, 120*time.Millisecond)
	m.Observe("GET", "/api/warehouse/totals/", 200, 80*time.Millisecond)
	m.Observe("POST", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{
		"method": "GET", "route": "/api/warehouse/totals/", "status": "200",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(2), got)

	got, err = fetchCounterValue(mfs, "http_requests_total", map[string]string{
		"method": "POST", "route": "unmatched", "status": "404",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1), got)

	mf := findMetricFamily(mfs, "http_request_duration_seconds")
	require.NotNil(t, mf)
	assert.Len(t, mf.GetMetric(), 2)
}

func TestHTTPMetrics_NilRegistererIsNoop(t *testing.T) {
	m := NewHTTPMetrics(nil)
	assert.NotPanics(t, func() { m.Observe("GET", "/", 200, time.Second) })

	var nilMetrics *HTTPMetrics
	assert.NotPanics(t, func() { nilMetrics.Observe("GET", "/", 200, time.Second) })
}

func TestRegisterPool(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterPool(reg, func() PoolStats { return PoolStats{Total: 5, Acquired: 2, Idle: 3} })

	mfs, err := reg.Gather()
	require.NoError(t, err)

	mf := findMetricFamily(mfs, "db_pool_idle_conns")
	require.NotNil(t, mf)
	assert.Equal(t, float64(3), mf.GetMetric()[0].GetGauge().GetValue())
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
