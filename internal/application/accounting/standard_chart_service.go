package accounting

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SetupResult reports the outcome of seeding the standard chart
type SetupResult struct {
	// Accounts maps chart keys (e.g. "cash", "suppliers") to account ids
	Accounts map[string]uuid.UUID
	// Created is false when the chart already existed
	Created bool
}

// StandardChartService seeds and inspects the standard chart of accounts
type StandardChartService struct {
	accounts accounting.AccountRepository
	journals accounting.JournalEntryRepository
	rates    accounting.ExchangeRateRepository
	txScope  TransactionScope
	logger   *zap.Logger
}

// NewStandardChartService creates a new StandardChartService
func NewStandardChartService(
	accounts accounting.AccountRepository,
	journals accounting.JournalEntryRepository,
	rates accounting.ExchangeRateRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *StandardChartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StandardChartService{accounts: accounts, journals: journals, rates: rates, txScope: txScope, logger: logger}
}

// HasStandardChart reports whether the organization already has seeded accounts
func (s *StandardChartService) HasStandardChart(ctx context.Context, orgID uuid.UUID) (bool, error) {
	return s.accounts.HasStandard(ctx, orgID)
}

// SetupStandardChart seeds the standard chart in one transaction and returns
// chart key to account id. A second call creates nothing and returns the
// existing map.
func (s *StandardChartService) SetupStandardChart(ctx context.Context, orgID uuid.UUID) (map[string]uuid.UUID, error) {
	result, err := s.Setup(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return result.Accounts, nil
}

// Setup is SetupStandardChart reporting whether anything was created
func (s *StandardChartService) Setup(ctx context.Context, orgID uuid.UUID) (SetupResult, error) {
	var result SetupResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		result, err = s.Seed(ctx, repos.Accounts(), orgID)
		return err
	})
	if shared.IsKind(err, shared.KindConflict) {
		// a concurrent request may have seeded the same organization first
		has, hasErr := s.accounts.HasStandard(ctx, orgID)
		if hasErr != nil {
			return SetupResult{}, hasErr
		}
		if !has {
			// a custom account occupies a standard code
			return SetupResult{}, shared.Internal("failed to seed the standard chart", err)
		}
		s.logger.Info("standard chart seeded concurrently", zap.String("organization_id", orgID.String()))
		accounts, err := existingChart(ctx, s.accounts, orgID)
		if err != nil {
			return SetupResult{}, err
		}
		return SetupResult{Accounts: accounts}, nil
	}
	if err != nil {
		return SetupResult{}, err
	}
	return result, nil
}

// Seed creates the standard chart with repo unless it already exists. It
// runs inside the caller's transaction.
func (s *StandardChartService) Seed(ctx context.Context, repo accounting.AccountRepository, orgID uuid.UUID) (SetupResult, error) {
	has, err := repo.HasStandard(ctx, orgID)
	if err != nil {
		return SetupResult{}, err
	}
	if has {
		accounts, err := existingChart(ctx, repo, orgID)
		if err != nil {
			return SetupResult{}, err
		}
		return SetupResult{Accounts: accounts}, nil
	}

	accounts, ids, err := accounting.BuildStandardAccounts(orgID)
	if err != nil {
		return SetupResult{}, err
	}
	if err := repo.CreateBatch(ctx, accounts); err != nil {
		return SetupResult{}, err
	}
	s.logger.Info("standard chart seeded",
		zap.String("organization_id", orgID.String()),
		zap.Int("accounts", len(accounts)),
	)
	return SetupResult{Accounts: ids, Created: true}, nil
}

// existingChart rebuilds the key to id map from the seeded accounts
func existingChart(ctx context.Context, repo accounting.AccountRepository, orgID uuid.UUID) (map[string]uuid.UUID, error) {
	standard, err := repo.FindStandard(ctx, orgID)
	if err != nil {
		return nil, err
	}
	keys := accounting.StandardChartKeyByCode()
	ids := make(map[string]uuid.UUID, len(standard))
	for _, a := range standard {
		if key, ok := keys[a.Code]; ok {
			ids[key] = a.ID
		}
	}
	return ids, nil
}

// GetChartStats returns aggregate counts of the organization's accounting data
func (s *StandardChartService) GetChartStats(ctx context.Context, orgID uuid.UUID) (*accounting.ChartStats, error) {
	byType, err := s.accounts.CountByType(ctx, orgID)
	if err != nil {
		return nil, err
	}
	standard, err := s.accounts.CountStandard(ctx, orgID)
	if err != nil {
		return nil, err
	}
	entries, err := s.journals.CountForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	rates, err := s.rates.CountForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byType {
		total += n
	}
	return &accounting.ChartStats{
		TotalAccounts:    total,
		StandardAccounts: standard,
		CustomAccounts:   total - standard,
		JournalEntries:   entries,
		ExchangeRates:    rates,
		AccountsByType:   byType,
	}, nil
}
