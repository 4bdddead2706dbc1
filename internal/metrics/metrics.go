package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"farmafacil/internal/config"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// AppMetrics holds all application metrics. A nil *AppMetrics records nothing.
type AppMetrics struct {
	// HTTP Metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestsErrors  metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	// Login Metrics
	OTPRequests metric.Int64Counter
	Logins      metric.Int64Counter

	// Assistant Metrics
	AssistantReplies metric.Int64Counter

	// Kiosk Metrics
	CartItemsAdded   metric.Int64Counter
	CartSubmissions  metric.Int64Counter
	SubmittedRevenue metric.Float64Counter
}

// Provider creates the OTLP/HTTP meter provider and installs it globally.
func Provider(ctx context.Context, cfg config.MetricsConfig, logger zerolog.Logger) (*sdkmetric.MeterProvider, error) {
	envRes, err := resource.New(ctx, resource.WithFromEnv())
	if err != nil {
		envRes = resource.Empty()
	}

	explicitRes, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create explicit resource: %w", err)
	}

	res, err := resource.Merge(envRes, explicitRes)
	if err != nil {
		return nil, fmt.Errorf("failed to merge resources: %w", err)
	}

	exporterOpts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
		otlpmetrichttp.WithURLPath("/v1/metrics"),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(cfg.ExportPeriod),
		)),
	)
	otel.SetMeterProvider(provider)

	logger.Info().
		Str("endpoint", cfg.Endpoint).
		Bool("insecure", cfg.Insecure).
		Dur("interval", cfg.ExportPeriod).
		Str("service_name", cfg.ServiceName).
		Msg("metrics exporter configured")

	return provider, nil
}

// NewNoop returns metrics that are recorded nowhere.
func NewNoop() *AppMetrics {
	m, _ := New(noop.NewMeterProvider().Meter("farmafacil"))
	return m
}

// New creates the application instruments on meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	// milliseconds, sized for the simulated backend latencies
	buckets := []float64{2, 5, 10, 50, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 5000, 10000}

	var (
		m   AppMetrics
		err error
	)

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("failed to create http requests counter: %w", err)
	}

	if m.HTTPRequestsErrors, err = meter.Int64Counter(
		"http.server.request.error.count",
		metric.WithDescription("Total number of HTTP error requests"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("failed to create http errors counter: %w", err)
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(buckets...),
	); err != nil {
		return nil, fmt.Errorf("failed to create http duration histogram: %w", err)
	}

	if m.OTPRequests, err = meter.Int64Counter(
		"otp_requests_total",
		metric.WithDescription("Login code requests by outcome"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("failed to create otp requests counter: %w", err)
	}

	if m.Logins, err = meter.Int64Counter(
		"logins_total",
		metric.WithDescription("Login code verifications by result"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("failed to create logins counter: %w", err)
	}

	if m.AssistantReplies, err = meter.Int64Counter(
		"assistant_replies_total",
		metric.WithDescription("Assistant replies by matched rule"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("failed to create assistant replies counter: %w", err)
	}

	if m.CartItemsAdded, err = meter.Int64Counter(
		"cart_items_added_total",
		metric.WithDescription("Units added to kiosk carts"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("failed to create cart items counter: %w", err)
	}

	if m.CartSubmissions, err = meter.Int64Counter(
		"cart_submissions_total",
		metric.WithDescription("Kiosk cart submissions by mode"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("failed to create cart submissions counter: %w", err)
	}

	if m.SubmittedRevenue, err = meter.Float64Counter(
		"submitted_revenue_total",
		metric.WithDescription("Total value of submitted kiosk carts"),
		metric.WithUnit("EUR"),
	); err != nil {
		return nil, fmt.Errorf("failed to create revenue counter: %w", err)
	}

	return &m, nil
}

// RecordHTTPRequest records one served request. route is the matched pattern,
// not the raw path, to keep cardinality bounded.
func (m *AppMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
		attribute.String("http.response.status_code", strconv.Itoa(status)),
	)

	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, float64(d.Microseconds())/1000, attrs)
	if status >= 500 {
		m.HTTPRequestsErrors.Add(ctx, 1, attrs)
	}
}

// RecordOTPRequest records a login code request; outcome is "sent" or "throttled".
func (m *AppMetrics) RecordOTPRequest(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.OTPRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AppMetrics) RecordLogin(ctx context.Context, success bool) {
	if m == nil {
		return
	}
	m.Logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}

func (m *AppMetrics) RecordAssistantReply(ctx context.Context, rule string) {
	if m == nil {
		return
	}
	m.AssistantReplies.Add(ctx, 1, metric.WithAttributes(attribute.String("rule", rule)))
}

func (m *AppMetrics) RecordCartAdd(ctx context.Context, pharmacyID string) {
	if m == nil {
		return
	}
	m.CartItemsAdded.Add(ctx, 1, metric.WithAttributes(attribute.String("pharmacy.id", pharmacyID)))
}

// RecordSubmission records a submitted cart and its value.
func (m *AppMetrics) RecordSubmission(ctx context.Context, pharmacyID, mode string, total decimal.Decimal) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("pharmacy.id", pharmacyID),
		attribute.String("mode", mode),
	)
	m.CartSubmissions.Add(ctx, 1, attrs)
	m.SubmittedRevenue.Add(ctx, total.InexactFloat64(), attrs)
}
