package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/dwstyles/internal/ports"
)

const (
	serviceName    = "dwstyles"
	serviceVersion = "1.0.0"
)

// Exporter exports catalog maintenance metrics to an OTEL Collector.
type Exporter struct {
	provider           *sdkmetric.MeterProvider
	layersTotal        metric.Int64Counter
	colorsCreated      metric.Int64Counter
	themeColorsWritten metric.Int64Counter
	membershipChanges  metric.Int64Counter
	colorsChanged      metric.Int64Counter
	pairsComputed      metric.Int64Counter
	distanceBuildHist  metric.Float64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)
	e := &Exporter{provider: provider}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&e.layersTotal, "dwstyles_layers_reconciled_total", "Layers reconciled into the catalog", "{layer}"},
		{&e.colorsCreated, "dwstyles_colors_created_total", "Colors first seen during reconciliation", "{color}"},
		{&e.themeColorsWritten, "dwstyles_theme_colors_written_total", "Theme colors created or updated", "{theme_color}"},
		{&e.membershipChanges, "dwstyles_group_membership_changes_total", "Color group memberships added or removed", "{membership}"},
		{&e.colorsChanged, "dwstyles_colors_recategorized_total", "Colors whose group memberships changed", "{color}"},
		{&e.pairsComputed, "dwstyles_distance_pairs_total", "Color distance pairs computed or skipped", "{pair}"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
		*c.dst = counter
	}

	e.distanceBuildHist, err = meter.Float64Histogram(
		"dwstyles_distance_build_seconds",
		metric.WithDescription("Duration of a distance cache build"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating distance build histogram: %w", err)
	}

	return e, nil
}

func (e *Exporter) ExportReconcile(ctx context.Context, m *ports.ReconcileMetrics) error {
	opt := metric.WithAttributes(
		attribute.String("theme_label", m.ThemeLabel),
		attribute.Bool("theme_resolved", m.ThemeResolved),
	)

	e.layersTotal.Add(ctx, 1, opt)
	e.colorsCreated.Add(ctx, m.ColorsCreated, opt)
	e.themeColorsWritten.Add(ctx, m.ThemeColorsCreated, metric.WithAttributes(attribute.String("op", "create")))
	e.themeColorsWritten.Add(ctx, m.ThemeColorsUpdated, metric.WithAttributes(attribute.String("op", "update")))
	return nil
}

func (e *Exporter) ExportCategorize(ctx context.Context, m *ports.CategorizeMetrics) error {
	e.membershipChanges.Add(ctx, m.Added, metric.WithAttributes(attribute.String("op", "add")))
	e.membershipChanges.Add(ctx, m.Removed, metric.WithAttributes(attribute.String("op", "remove")))
	e.colorsChanged.Add(ctx, m.ColorsChanged)
	return nil
}

func (e *Exporter) ExportDistances(ctx context.Context, m *ports.DistanceMetrics) error {
	e.pairsComputed.Add(ctx, m.PairsComputed, metric.WithAttributes(attribute.String("result", "computed")))
	e.pairsComputed.Add(ctx, m.PairsSkipped, metric.WithAttributes(attribute.String("result", "skipped")))
	e.distanceBuildHist.Record(ctx, m.Duration.Seconds())
	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
