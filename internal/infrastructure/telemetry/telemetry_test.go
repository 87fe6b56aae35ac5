package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/obraerp/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumFor(t *testing.T, data metricdata.Aggregation, key attribute.Key, value string) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected an int64 sum, got %T", data)
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(key); ok && v.AsString() == value {
			return dp.Value
		}
	}
	return 0
}

func TestDisabledProviders(t *testing.T) {
	ctx := context.Background()

	tp, err := NewTracerProvider(ctx, config.TelemetryConfig{}, nil)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("x"))
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, config.TelemetryConfig{Enabled: true}, nil)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("x"))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased")
}

func TestBusinessMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	bm, err := NewBusinessMetrics(NewMeterProviderWithReader(reader))
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordImport(ctx, "clients", 8, 2)
	bm.RecordImport(ctx, "clients", 1, 0)
	bm.RecordExport(ctx, "projects", "xlsx", 12, 4096)
	bm.RecordChartSeeded(ctx, "reconcile")
	bm.RecordRateLimited(ctx, "system")

	data := collect(t, reader)
	assert.Equal(t, int64(9), sumFor(t, data["obraerp.import.rows"], attrOutcome, "imported"))
	assert.Equal(t, int64(2), sumFor(t, data["obraerp.import.rows"], attrOutcome, "failed"))
	assert.Equal(t, int64(1), sumFor(t, data["obraerp.export.files"], attrEntity, "projects"))
	assert.Equal(t, int64(12), sumFor(t, data["obraerp.export.rows"], attrFormat, "xlsx"))
	assert.Equal(t, int64(1), sumFor(t, data["obraerp.chart.seeded"], attrSource, "reconcile"))
	assert.Equal(t, int64(1), sumFor(t, data["obraerp.ratelimit.denied"], attrGroup, "system"))
	assert.Contains(t, data, "obraerp.export.size")
}

func TestRegisterPoolMetrics(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	reader := sdkmetric.NewManualReader()
	reg, err := RegisterPoolMetrics(NewMeterProviderWithReader(reader), sqlDB)
	require.NoError(t, err)
	defer reg.Unregister()

	data := collect(t, reader)
	assert.Contains(t, data, "db.client.connections.open")
	assert.Contains(t, data, "db.client.connections.waits")
}

func TestServiceSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, span := StartServiceSpan(context.Background(), "accounting", "disable", attribute.String("organization_id", "org-1"))
	assert.NotEmpty(t, GetTraceID(ctx))
	EndSpan(span, errors.New("tx failed"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "accounting.disable", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestDBTracingPlugin(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	t.Run("disabled is a no-op", func(t *testing.T) {
		p := NewDBTracingPlugin(config.TelemetryConfig{Enabled: true}, nil)
		require.NoError(t, p.Register(db))
		assert.Nil(t, db.Callback().Query().Get("otel_timing:after_query"))
	})

	t.Run("registers timing callbacks", func(t *testing.T) {
		p := NewDBTracingPlugin(config.TelemetryConfig{Enabled: true, DBTraceEnabled: true}, nil)
		require.NoError(t, p.Register(db))
		assert.NotNil(t, db.Callback().Query().Get("otel_timing:after_query"))
		assert.NotNil(t, db.Callback().Create().Get("otel_timing:before_create"))
	})
}
