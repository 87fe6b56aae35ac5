package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger drops expired in-memory state (rate limit windows, revoked tokens)
type Purger interface {
	Purge() int
}

// ChartReconciler seeds organizations that have accounting enabled but no chart
type ChartReconciler interface {
	ReconcileCharts(ctx context.Context) (int, error)
}

// PurgeJob returns a job that purges expired in-memory entries
func PurgeJob(spec string, purger Purger, logger *zap.Logger) Job {
	return Job{
		Name: "ratelimit-purge",
		Spec: spec,
		Run: func(context.Context) error {
			if n := purger.Purge(); n > 0 {
				logger.Debug("Purged expired entries", zap.Int("count", n))
			}
			return nil
		},
	}
}

// ChartReconcileJob returns a job that repairs missing standard charts
func ChartReconcileJob(spec string, timeout time.Duration, reconciler ChartReconciler, logger *zap.Logger) Job {
	return Job{
		Name:    "chart-reconcile",
		Spec:    spec,
		Timeout: timeout,
		Run: func(ctx context.Context) error {
			repaired, err := reconciler.ReconcileCharts(ctx)
			if repaired > 0 {
				logger.Warn("Repaired standard charts", zap.Int("organizations", repaired))
			}
			return err
		},
	}
}
