package otel

import (
	"context"

	"github.com/emiliopalmerini/dwstyles/internal/ports"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) ExportReconcile(ctx context.Context, m *ports.ReconcileMetrics) error {
	return nil
}

func (e *NoOpExporter) ExportCategorize(ctx context.Context, m *ports.CategorizeMetrics) error {
	return nil
}

func (e *NoOpExporter) ExportDistances(ctx context.Context, m *ports.DistanceMetrics) error {
	return nil
}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
