package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegisterPoolMetrics exports connection pool statistics as observable gauges
func RegisterPoolMetrics(mp *MeterProvider, db *sql.DB) (metric.Registration, error) {
	meter := mp.Meter(meterName)

	open, err := meter.Int64ObservableGauge("db.client.connections.open",
		metric.WithDescription("Open connections, in use and idle"))
	if err != nil {
		return nil, fmt.Errorf("open connections gauge: %w", err)
	}
	inUse, err := meter.Int64ObservableGauge("db.client.connections.in_use",
		metric.WithDescription("Connections currently in use"))
	if err != nil {
		return nil, fmt.Errorf("in use gauge: %w", err)
	}
	idle, err := meter.Int64ObservableGauge("db.client.connections.idle",
		metric.WithDescription("Idle connections"))
	if err != nil {
		return nil, fmt.Errorf("idle gauge: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("db.client.connections.waits",
		metric.WithDescription("Total waits for a free connection"))
	if err != nil {
		return nil, fmt.Errorf("wait counter: %w", err)
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := db.Stats()
		o.ObserveInt64(open, int64(stats.OpenConnections))
		o.ObserveInt64(inUse, int64(stats.InUse))
		o.ObserveInt64(idle, int64(stats.Idle))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, open, inUse, idle, waits)
}
