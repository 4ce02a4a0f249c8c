package ports

import (
	"context"
	"time"
)

// MetricsExporter exports catalog maintenance metrics to an external
// observability system.
type MetricsExporter interface {
	ExportReconcile(ctx context.Context, m *ReconcileMetrics) error
	ExportCategorize(ctx context.Context, m *CategorizeMetrics) error
	ExportDistances(ctx context.Context, m *DistanceMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

type ReconcileMetrics struct {
	ThemeLabel         string
	ThemeResolved      bool
	ColorsCreated      int64
	ThemeColorsCreated int64
	ThemeColorsUpdated int64
}

type CategorizeMetrics struct {
	ColorsScanned int64
	ColorsChanged int64
	Added         int64
	Removed       int64
}

type DistanceMetrics struct {
	PairsComputed int64
	PairsSkipped  int64
	Duration      time.Duration
}
