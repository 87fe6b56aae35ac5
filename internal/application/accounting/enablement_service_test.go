package accounting

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountingMocks struct {
	orgs     *MockOrganizationRepository
	accounts *MockAccountRepository
	journals *MockJournalEntryRepository
	rates    *MockExchangeRateRepository
	chart    *StandardChartService
	enable   *EnablementService
}

func newAccountingMocks() accountingMocks {
	m := accountingMocks{
		orgs:     new(MockOrganizationRepository),
		accounts: new(MockAccountRepository),
		journals: new(MockJournalEntryRepository),
		rates:    new(MockExchangeRateRepository),
	}
	scope := NewNoOpTransactionScope(m.orgs, m.accounts, m.journals, m.rates)
	m.chart = NewStandardChartService(m.accounts, m.journals, m.rates, scope, nil)
	m.enable = NewEnablementService(m.orgs, m.chart, scope, nil)
	return m
}

func TestStandardChartService_Setup(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("first call seeds the whole chart", func(t *testing.T) {
		m := newAccountingMocks()
		m.accounts.On("HasStandard", ctx, orgID).Return(false, nil)
		m.accounts.On("CreateBatch", ctx, mock.MatchedBy(func(batch []*accounting.Account) bool {
			return len(batch) == len(accounting.StandardChart())
		})).Return(nil)

		ids, err := m.chart.SetupStandardChart(ctx, orgID)
		require.NoError(t, err)
		assert.Len(t, ids, len(accounting.StandardChart()))
		assert.Contains(t, ids, "cash")
	})

	t.Run("second call returns the existing map without creating", func(t *testing.T) {
		m := newAccountingMocks()
		accounts, ids, err := accounting.BuildStandardAccounts(orgID)
		require.NoError(t, err)
		existing := make([]accounting.Account, len(accounts))
		for i, a := range accounts {
			existing[i] = *a
		}
		m.accounts.On("HasStandard", ctx, orgID).Return(true, nil)
		m.accounts.On("FindStandard", ctx, orgID).Return(existing, nil)

		result, err := m.chart.Setup(ctx, orgID)
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, ids, result.Accounts)
		m.accounts.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("concurrent seeding is treated as already seeded", func(t *testing.T) {
		m := newAccountingMocks()
		m.accounts.On("HasStandard", ctx, orgID).Return(false, nil).Once()
		m.accounts.On("CreateBatch", ctx, mock.Anything).Return(shared.Conflict("ALREADY_EXISTS", "duplicate")).Once()
		m.accounts.On("HasStandard", ctx, orgID).Return(true, nil).Once()
		m.accounts.On("FindStandard", ctx, orgID).Return([]accounting.Account{}, nil)

		result, err := m.chart.Setup(ctx, orgID)
		require.NoError(t, err)
		assert.False(t, result.Created)
	})

	t.Run("a custom account squatting a standard code is an internal error", func(t *testing.T) {
		m := newAccountingMocks()
		m.accounts.On("HasStandard", ctx, orgID).Return(false, nil)
		m.accounts.On("CreateBatch", ctx, mock.Anything).Return(shared.Conflict("ALREADY_EXISTS", "duplicate"))

		_, err := m.chart.Setup(ctx, orgID)
		assert.True(t, shared.IsKind(err, shared.KindInternal))
	})
}

func TestEnablementService_Enable(t *testing.T) {
	ctx := context.Background()

	t.Run("sets the flag after seeding", func(t *testing.T) {
		m := newAccountingMocks()
		org, _ := identity.NewOrganization("Constructora", "ARS")
		m.orgs.On("FindByIDForUpdate", ctx, org.ID).Return(org, nil)
		m.accounts.On("HasStandard", ctx, org.ID).Return(false, nil)
		m.accounts.On("CreateBatch", ctx, mock.Anything).Return(nil)
		m.orgs.On("Save", ctx, org).Return(nil)

		result, err := m.enable.Enable(ctx, org.ID)
		require.NoError(t, err)
		assert.True(t, result.ChartCreated)
		assert.True(t, org.EnableAccounting)
	})

	t.Run("seed failure leaves the flag untouched", func(t *testing.T) {
		m := newAccountingMocks()
		org, _ := identity.NewOrganization("Constructora", "ARS")
		m.orgs.On("FindByIDForUpdate", ctx, org.ID).Return(org, nil)
		m.accounts.On("HasStandard", ctx, org.ID).Return(false, nil)
		m.accounts.On("CreateBatch", ctx, mock.Anything).Return(errors.New("disk full"))

		_, err := m.enable.Enable(ctx, org.ID)
		assert.True(t, shared.IsKind(err, shared.KindInternal))
		assert.False(t, org.EnableAccounting)
		m.orgs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestEnablementService_EnableAfterConcurrentSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("retries and reuses the chart seeded first", func(t *testing.T) {
		m := newAccountingMocks()
		org, _ := identity.NewOrganization("Constructora", "ARS")
		m.orgs.On("FindByIDForUpdate", ctx, org.ID).Return(org, nil)
		m.accounts.On("HasStandard", ctx, org.ID).Return(false, nil).Once()
		m.accounts.On("CreateBatch", ctx, mock.Anything).Return(shared.Conflict("ALREADY_EXISTS", "duplicate")).Once()
		m.accounts.On("HasStandard", ctx, org.ID).Return(true, nil).Once()
		m.accounts.On("FindStandard", ctx, org.ID).Return([]accounting.Account{}, nil)
		m.orgs.On("Save", ctx, org).Return(nil)

		result, err := m.enable.Enable(ctx, org.ID)
		require.NoError(t, err)
		assert.False(t, result.ChartCreated)
		assert.True(t, org.EnableAccounting)
		m.accounts.AssertNumberOfCalls(t, "CreateBatch", 1)
	})

	t.Run("a custom account squatting a standard code is an internal error", func(t *testing.T) {
		m := newAccountingMocks()
		org, _ := identity.NewOrganization("Constructora", "ARS")
		m.orgs.On("FindByIDForUpdate", ctx, org.ID).Return(org, nil)
		m.accounts.On("HasStandard", ctx, org.ID).Return(false, nil)
		m.accounts.On("CreateBatch", ctx, mock.Anything).Return(shared.Conflict("ALREADY_EXISTS", "duplicate"))

		_, err := m.enable.Enable(ctx, org.ID)
		assert.True(t, shared.IsKind(err, shared.KindInternal))
		assert.False(t, org.EnableAccounting)
		m.orgs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestEnablementService_SetupChartRequiresAccounting(t *testing.T) {
	ctx := context.Background()
	m := newAccountingMocks()
	org, _ := identity.NewOrganization("Constructora", "ARS")
	m.orgs.On("FindByID", ctx, org.ID).Return(org, nil)

	_, err := m.enable.SetupChart(ctx, org.ID)
	assert.ErrorIs(t, err, shared.ErrFeatureDisabled)
}

func TestEnablementService_Disable(t *testing.T) {
	ctx := context.Background()
	m := newAccountingMocks()
	org, _ := identity.NewOrganization("Constructora", "ARS")
	org.EnableAccounting = true

	var order []string
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, name) }
	}
	m.orgs.On("FindByIDForUpdate", ctx, org.ID).Return(org, nil)
	m.journals.On("DeleteAllForOrg", ctx, org.ID).Run(record("journals")).Return(int64(4), nil)
	m.rates.On("DeleteAllForOrg", ctx, org.ID).Run(record("rates")).Return(int64(2), nil)
	m.accounts.On("DeleteAllForOrg", ctx, org.ID).Run(record("accounts")).Return(int64(37), nil)
	m.orgs.On("Save", ctx, org).Run(record("flag")).Return(nil)

	result, err := m.enable.Disable(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"journals", "rates", "accounts", "flag"}, order)
	assert.Equal(t, int64(4), result.DeletedJournalEntries)
	assert.Equal(t, int64(37), result.DeletedAccounts)
	assert.False(t, org.EnableAccounting)
}
