package accounting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/obraerp/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ChartMetrics counts seeded charts by source
type ChartMetrics interface {
	RecordChartSeeded(ctx context.Context, source string)
}

// Status describes the accounting feature of one organization
type Status struct {
	EnableAccounting bool
	HasStandardChart bool
	Stats            *accounting.ChartStats
}

// EnableResult reports the outcome of enabling accounting
type EnableResult struct {
	AlreadyEnabled   bool
	ChartCreated     bool
	StandardAccounts int
}

// DisableResult reports what disabling accounting removed
type DisableResult struct {
	DeletedJournalEntries int64
	DeletedExchangeRates  int64
	DeletedAccounts       int64
}

// EnablementService turns the accounting feature on and off
type EnablementService struct {
	orgs    identity.OrganizationRepository
	chart   *StandardChartService
	txScope TransactionScope
	metrics ChartMetrics
	logger  *zap.Logger
}

// NewEnablementService creates a new EnablementService
func NewEnablementService(
	orgs identity.OrganizationRepository,
	chart *StandardChartService,
	txScope TransactionScope,
	logger *zap.Logger,
) *EnablementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnablementService{orgs: orgs, chart: chart, txScope: txScope, logger: logger}
}

// SetMetrics records seeded charts
func (s *EnablementService) SetMetrics(m ChartMetrics) {
	s.metrics = m
}

func (s *EnablementService) recordSeeded(ctx context.Context, source string) {
	if s.metrics != nil {
		s.metrics.RecordChartSeeded(ctx, source)
	}
}

// Status returns the flag, whether a chart exists and the chart stats
func (s *EnablementService) Status(ctx context.Context, orgID uuid.UUID) (*Status, error) {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	has, err := s.chart.HasStandardChart(ctx, orgID)
	if err != nil {
		return nil, err
	}
	stats, err := s.chart.GetChartStats(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return &Status{EnableAccounting: org.EnableAccounting, HasStandardChart: has, Stats: stats}, nil
}

// Enable sets the flag and seeds the standard chart in one transaction.
// When seeding fails nothing is committed and the flag stays false.
func (s *EnablementService) Enable(ctx context.Context, orgID uuid.UUID) (_ *EnableResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "accounting", "enable", attribute.String("organization_id", orgID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	var result EnableResult
	enable := func(repos TransactionalRepositories) error {
		result = EnableResult{}
		org, err := repos.Organizations().FindByIDForUpdate(ctx, orgID)
		if err != nil {
			return err
		}

		seeded, err := s.chart.Seed(ctx, repos.Accounts(), orgID)
		if shared.IsKind(err, shared.KindConflict) {
			return err
		}
		if err != nil {
			return shared.Internal("failed to seed the standard chart", err)
		}
		result.ChartCreated = seeded.Created
		result.StandardAccounts = len(seeded.Accounts)

		if org.EnableAccounting {
			result.AlreadyEnabled = true
			return nil
		}
		org.EnableAccounting = true
		org.Touch()
		return repos.Organizations().Save(ctx, org)
	}
	err = s.txScope.Execute(ctx, enable)
	if shared.IsKind(err, shared.KindConflict) {
		// a concurrent SetupChart seeded first; the retry finds its chart
		s.logger.Info("standard chart seeded concurrently", zap.String("organization_id", orgID.String()))
		err = s.txScope.Execute(ctx, enable)
		if shared.IsKind(err, shared.KindConflict) {
			// a custom account occupies a standard code
			err = shared.Internal("failed to seed the standard chart", err)
		}
	}
	if err != nil {
		return nil, err
	}

	if result.ChartCreated {
		s.recordSeeded(ctx, "enable")
	}
	if !result.AlreadyEnabled {
		s.logger.Info("accounting enabled",
			zap.String("organization_id", orgID.String()),
			zap.Int("standard_accounts", result.StandardAccounts),
		)
	}
	return &result, nil
}

// SetupChart seeds the standard chart for an organization that already has
// accounting enabled
func (s *EnablementService) SetupChart(ctx context.Context, orgID uuid.UUID) (SetupResult, error) {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return SetupResult{}, err
	}
	if err := org.RequireAccounting(); err != nil {
		return SetupResult{}, err
	}
	result, err := s.chart.Setup(ctx, orgID)
	if err != nil {
		return SetupResult{}, err
	}
	if result.Created {
		s.recordSeeded(ctx, "setup")
	}
	return result, nil
}

// Disable removes journal entries, exchange rates and accounts, then clears
// the flag. Everything happens in one transaction.
func (s *EnablementService) Disable(ctx context.Context, orgID uuid.UUID) (_ *DisableResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "accounting", "disable", attribute.String("organization_id", orgID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	var result DisableResult
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		org, err := repos.Organizations().FindByIDForUpdate(ctx, orgID)
		if err != nil {
			return err
		}

		if result.DeletedJournalEntries, err = repos.JournalEntries().DeleteAllForOrg(ctx, orgID); err != nil {
			return fmt.Errorf("deleting journal entries: %w", err)
		}
		if result.DeletedExchangeRates, err = repos.ExchangeRates().DeleteAllForOrg(ctx, orgID); err != nil {
			return fmt.Errorf("deleting exchange rates: %w", err)
		}
		if result.DeletedAccounts, err = repos.Accounts().DeleteAllForOrg(ctx, orgID); err != nil {
			return fmt.Errorf("deleting accounts: %w", err)
		}

		org.EnableAccounting = false
		org.Touch()
		return repos.Organizations().Save(ctx, org)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("accounting disabled",
		zap.String("organization_id", orgID.String()),
		zap.Int64("journal_entries", result.DeletedJournalEntries),
		zap.Int64("exchange_rates", result.DeletedExchangeRates),
		zap.Int64("accounts", result.DeletedAccounts),
	)
	return &result, nil
}

// ReconcileCharts seeds every organization that has accounting enabled but
// no standard accounts. It returns the number of repaired organizations.
func (s *EnablementService) ReconcileCharts(ctx context.Context) (int, error) {
	ids, err := s.orgs.FindAccountingEnabledIDs(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, orgID := range ids {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		has, err := s.chart.HasStandardChart(ctx, orgID)
		if err != nil {
			s.logger.Error("chart reconcile check failed", zap.String("organization_id", orgID.String()), zap.Error(err))
			continue
		}
		if has {
			continue
		}
		result, err := s.chart.Setup(ctx, orgID)
		if err != nil {
			s.logger.Error("chart reconcile seed failed", zap.String("organization_id", orgID.String()), zap.Error(err))
			continue
		}
		if result.Created {
			repaired++
			s.recordSeeded(ctx, "reconcile")
			s.logger.Warn("repaired missing standard chart", zap.String("organization_id", orgID.String()))
		}
	}
	return repaired, nil
}
