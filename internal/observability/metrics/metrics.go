package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	analyticsQueries   metric.Int64Counter
	sourceFailures     metric.Int64Counter
	supersededRequests metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "fitlane"
	}
	meter := provider.Meter(name)

	analyticsQueries, err := meter.Int64Counter("fitlane_analytics_queries_total")
	if err != nil {
		return nil, err
	}
	sourceFailures, err := meter.Int64Counter("fitlane_analytics_source_failures_total")
	if err != nil {
		return nil, err
	}
	supersededRequests, err := meter.Int64Counter("fitlane_analytics_superseded_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		analyticsQueries:   analyticsQueries,
		sourceFailures:     sourceFailures,
		supersededRequests: supersededRequests,
	}, nil
}

// RecordQuery increments the analytics query count per view kind.
func (m *Metrics) RecordQuery(ctx context.Context, view string) {
	if m == nil {
		return
	}
	m.analyticsQueries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("view", strings.TrimSpace(view)),
	))
}

// RecordSourceFailure counts an adapter fetch that returned an error.
func (m *Metrics) RecordSourceFailure(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.sourceFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", strings.TrimSpace(source)),
	))
}

// RecordSuperseded counts a result discarded because a newer request ran.
func (m *Metrics) RecordSuperseded(ctx context.Context) {
	if m == nil {
		return
	}
	m.supersededRequests.Add(ctx, 1)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported otlp protocol %q", protocol)
	}
}
