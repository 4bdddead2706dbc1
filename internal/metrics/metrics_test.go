package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*AppMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := New(provider.Meter("test"))
	require.NoError(t, err)

	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			out[md.Name] = md.Data
		}
	}
	return out
}

func sumInt(t *testing.T, agg metricdata.Aggregation) int64 {
	t.Helper()

	sum, ok := agg.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", agg)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecordHTTPRequest(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordHTTPRequest(ctx, "GET", "GET /api/orders", 200, 12*time.Millisecond)
	m.RecordHTTPRequest(ctx, "GET", "GET /api/orders", 500, 3*time.Millisecond)

	data := collect(t, reader)
	assert.Equal(t, int64(2), sumInt(t, data["http.server.request.count"]))
	assert.Equal(t, int64(1), sumInt(t, data["http.server.request.error.count"]))

	hist, ok := data["http.server.request.duration"].(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestDomainCounters(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordOTPRequest(ctx, "sent")
	m.RecordOTPRequest(ctx, "throttled")
	m.RecordLogin(ctx, true)
	m.RecordAssistantReply(ctx, "greeting")
	m.RecordCartAdd(ctx, "F012")
	m.RecordCartAdd(ctx, "F012")
	m.RecordSubmission(ctx, "F012", "kiosk", decimal.RequireFromString("12.40"))

	data := collect(t, reader)
	assert.Equal(t, int64(2), sumInt(t, data["otp_requests_total"]))
	assert.Equal(t, int64(1), sumInt(t, data["logins_total"]))
	assert.Equal(t, int64(1), sumInt(t, data["assistant_replies_total"]))
	assert.Equal(t, int64(2), sumInt(t, data["cart_items_added_total"]))
	assert.Equal(t, int64(1), sumInt(t, data["cart_submissions_total"]))

	revenue, ok := data["submitted_revenue_total"].(metricdata.Sum[float64])
	require.True(t, ok)
	require.Len(t, revenue.DataPoints, 1)
	assert.InDelta(t, 12.40, revenue.DataPoints[0].Value, 0.001)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *AppMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest(ctx, "GET", "/", 200, time.Millisecond)
		m.RecordOTPRequest(ctx, "sent")
		m.RecordLogin(ctx, false)
		m.RecordAssistantReply(ctx, "default")
		m.RecordCartAdd(ctx, "F1")
		m.RecordSubmission(ctx, "F1", "counter", decimal.NewFromInt(1))
	})
}

func TestNewNoop(t *testing.T) {
	m := NewNoop()
	require.NotNil(t, m)

	assert.NotPanics(t, func() {
		m.RecordLogin(context.Background(), true)
	})
}
