package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "obraerp-backend"

var (
	attrEntity  = attribute.Key("entity")
	attrFormat  = attribute.Key("format")
	attrOutcome = attribute.Key("outcome")
	attrSource  = attribute.Key("source")
	attrGroup   = attribute.Key("group")
)

// BusinessMetrics records import, export, chart and rate limit counters
type BusinessMetrics struct {
	importRows  metric.Int64Counter
	exportFiles metric.Int64Counter
	exportRows  metric.Int64Counter
	exportBytes metric.Int64Histogram
	chartSeeds  metric.Int64Counter
	rateLimited metric.Int64Counter
}

// NewBusinessMetrics registers the instruments on the provider's meter
func NewBusinessMetrics(mp *MeterProvider) (*BusinessMetrics, error) {
	meter := mp.Meter(meterName)
	bm := &BusinessMetrics{}
	var err error

	if bm.importRows, err = meter.Int64Counter("obraerp.import.rows",
		metric.WithDescription("Spreadsheet import rows by outcome"),
		metric.WithUnit("{row}")); err != nil {
		return nil, fmt.Errorf("import rows counter: %w", err)
	}
	if bm.exportFiles, err = meter.Int64Counter("obraerp.export.files",
		metric.WithDescription("Generated export files"),
		metric.WithUnit("{file}")); err != nil {
		return nil, fmt.Errorf("export files counter: %w", err)
	}
	if bm.exportRows, err = meter.Int64Counter("obraerp.export.rows",
		metric.WithDescription("Rows written to exports"),
		metric.WithUnit("{row}")); err != nil {
		return nil, fmt.Errorf("export rows counter: %w", err)
	}
	if bm.exportBytes, err = meter.Int64Histogram("obraerp.export.size",
		metric.WithDescription("Export file size"),
		metric.WithUnit("By")); err != nil {
		return nil, fmt.Errorf("export size histogram: %w", err)
	}
	if bm.chartSeeds, err = meter.Int64Counter("obraerp.chart.seeded",
		metric.WithDescription("Standard charts of accounts created"),
		metric.WithUnit("{chart}")); err != nil {
		return nil, fmt.Errorf("chart seeded counter: %w", err)
	}
	if bm.rateLimited, err = meter.Int64Counter("obraerp.ratelimit.denied",
		metric.WithDescription("Requests rejected by the rate limiter"),
		metric.WithUnit("{request}")); err != nil {
		return nil, fmt.Errorf("rate limit counter: %w", err)
	}
	return bm, nil
}

// RecordImport counts imported and failed rows
func (bm *BusinessMetrics) RecordImport(ctx context.Context, entity string, imported, failed int) {
	if imported > 0 {
		bm.importRows.Add(ctx, int64(imported), metric.WithAttributes(attrEntity.String(entity), attrOutcome.String("imported")))
	}
	if failed > 0 {
		bm.importRows.Add(ctx, int64(failed), metric.WithAttributes(attrEntity.String(entity), attrOutcome.String("failed")))
	}
}

// RecordExport counts one generated file
func (bm *BusinessMetrics) RecordExport(ctx context.Context, entity, format string, rows, bytes int) {
	attrs := metric.WithAttributes(attrEntity.String(entity), attrFormat.String(format))
	bm.exportFiles.Add(ctx, 1, attrs)
	bm.exportRows.Add(ctx, int64(rows), attrs)
	bm.exportBytes.Record(ctx, int64(bytes), attrs)
}

// RecordChartSeeded counts a seeded chart. source is "enable", "setup" or "reconcile".
func (bm *BusinessMetrics) RecordChartSeeded(ctx context.Context, source string) {
	bm.chartSeeds.Add(ctx, 1, metric.WithAttributes(attrSource.String(source)))
}

// RecordRateLimited counts a rejected request
func (bm *BusinessMetrics) RecordRateLimited(ctx context.Context, group string) {
	bm.rateLimited.Add(ctx, 1, metric.WithAttributes(attrGroup.String(group)))
}
