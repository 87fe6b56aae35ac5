package integration

import (
	"context"
	"testing"
	"time"

	appaccounting "github.com/obraerp/backend/internal/application/accounting"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountingFixture struct {
	enablement *appaccounting.EnablementService
	accounts   *appaccounting.AccountService
	journal    *appaccounting.JournalService
	rates      *appaccounting.ExchangeRateService
}

func newAccountingFixture(tdb *TestDB) accountingFixture {
	accounts := persistence.NewGormAccountRepository(tdb.DB)
	journals := persistence.NewGormJournalEntryRepository(tdb.DB)
	rates := persistence.NewGormExchangeRateRepository(tdb.DB)
	txScope := persistence.NewGormTransactionScope(tdb.DB)

	chart := appaccounting.NewStandardChartService(accounts, journals, rates, txScope, nil)
	return accountingFixture{
		enablement: appaccounting.NewEnablementService(persistence.NewGormOrganizationRepository(tdb.DB), chart, txScope, nil),
		accounts:   appaccounting.NewAccountService(accounts, journals),
		journal:    appaccounting.NewJournalService(journals, accounts, persistence.NewGormProjectRepository(tdb.DB)),
		rates:      appaccounting.NewExchangeRateService(rates),
	}
}

func TestAccountingLifecycle(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()
	fx := newAccountingFixture(tdb)

	org := tdb.CreateOrganization("Constructora Litoral")
	other := tdb.CreateOrganization("Constructora Andina")
	standard := int64(len(accounting.StandardChart()))

	status, err := fx.enablement.Status(ctx, org.ID)
	require.NoError(t, err)
	assert.False(t, status.EnableAccounting)
	assert.False(t, status.HasStandardChart)

	enabled, err := fx.enablement.Enable(ctx, org.ID)
	require.NoError(t, err)
	assert.False(t, enabled.AlreadyEnabled)
	assert.True(t, enabled.ChartCreated)
	assert.Equal(t, standard, int64(enabled.StandardAccounts))
	assert.Equal(t, standard, tdb.Count("accounts", org.ID))

	t.Run("enable twice does not reseed", func(t *testing.T) {
		again, err := fx.enablement.Enable(ctx, org.ID)
		require.NoError(t, err)
		assert.True(t, again.AlreadyEnabled)
		assert.False(t, again.ChartCreated)
		assert.Equal(t, standard, tdb.Count("accounts", org.ID))
	})

	t.Run("setup chart is idempotent", func(t *testing.T) {
		res, err := fx.enablement.SetupChart(ctx, org.ID)
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.NotEmpty(t, res.Accounts["cash"])
		assert.Equal(t, standard, tdb.Count("accounts", org.ID))
	})

	res, err := fx.enablement.SetupChart(ctx, org.ID)
	require.NoError(t, err)

	custom, err := fx.accounts.Create(ctx, org.ID, appaccounting.CreateAccountInput{
		Code:       "1.1.99",
		Name:       "Caja Obra Escuela 12",
		Type:       string(accounting.AccountTypeAsset),
		ParentCode: "1.1",
	})
	require.NoError(t, err)

	_, err = fx.journal.Create(ctx, org.ID, appaccounting.CreateJournalEntryInput{
		Date:            time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Description:     "Anticipo de obra",
		DebitAccountID:  custom.ID,
		CreditAccountID: res.Accounts["banks"],
		Amount:          decimal.RequireFromString("150000.50"),
		Currency:        "ARS",
	})
	require.NoError(t, err)

	_, err = fx.rates.Create(ctx, org.ID, "USD", "ARS", decimal.RequireFromString("1050.25"),
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	t.Run("stats count standard and custom accounts", func(t *testing.T) {
		status, err := fx.enablement.Status(ctx, org.ID)
		require.NoError(t, err)
		require.NotNil(t, status.Stats)
		assert.True(t, status.EnableAccounting)
		assert.True(t, status.HasStandardChart)
		assert.Equal(t, standard+1, status.Stats.TotalAccounts)
		assert.Equal(t, int64(1), status.Stats.CustomAccounts)
		assert.Equal(t, int64(1), status.Stats.JournalEntries)
		assert.Equal(t, int64(1), status.Stats.ExchangeRates)
	})

	t.Run("journal entry cannot use another organization's account", func(t *testing.T) {
		_, err := fx.enablement.Enable(ctx, other.ID)
		require.NoError(t, err)

		_, err = fx.journal.Create(ctx, other.ID, appaccounting.CreateJournalEntryInput{
			Date:            time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			Description:     "Cruce indebido",
			DebitAccountID:  custom.ID,
			CreditAccountID: res.Accounts["banks"],
			Amount:          decimal.NewFromInt(10),
			Currency:        "ARS",
		})
		assert.Error(t, err)
		assert.Equal(t, int64(0), tdb.Count("journal_entries", other.ID))
	})

	t.Run("disable removes the ledger of one organization only", func(t *testing.T) {
		disabled, err := fx.enablement.Disable(ctx, org.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), disabled.DeletedJournalEntries)
		assert.Equal(t, int64(1), disabled.DeletedExchangeRates)
		assert.Equal(t, standard+1, disabled.DeletedAccounts)

		assert.Zero(t, tdb.Count("accounts", org.ID))
		assert.Zero(t, tdb.Count("journal_entries", org.ID))
		assert.Zero(t, tdb.Count("exchange_rates", org.ID))
		assert.Equal(t, standard, tdb.Count("accounts", other.ID))

		status, err := fx.enablement.Status(ctx, org.ID)
		require.NoError(t, err)
		assert.False(t, status.EnableAccounting)
	})

	t.Run("reconcile seeds enabled organizations without a chart", func(t *testing.T) {
		require.NoError(t, tdb.DB.Exec("DELETE FROM accounts WHERE organization_id = ?", other.ID).Error)

		repaired, err := fx.enablement.ReconcileCharts(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, repaired, 1)
		assert.Equal(t, standard, tdb.Count("accounts", other.ID))
	})
}
