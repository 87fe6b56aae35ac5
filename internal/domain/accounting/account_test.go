package accounting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	orgID := uuid.New()

	t.Run("creates custom account", func(t *testing.T) {
		a, err := NewAccount(orgID, " 1.1.10 ", "Caja Chica", AccountTypeAsset, nil)

		require.NoError(t, err)
		assert.Equal(t, "1.1.10", a.Code)
		assert.False(t, a.IsStandard)
		assert.True(t, a.IsActive)
		assert.True(t, a.BelongsTo(orgID))
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewAccount(orgID, "", "Caja", AccountTypeAsset, nil)
		assert.True(t, shared.IsKind(err, shared.KindValidationFailed))
	})

	t.Run("rejects code with spaces", func(t *testing.T) {
		_, err := NewAccount(orgID, "1 1", "Caja", AccountTypeAsset, nil)
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewAccount(orgID, "9", "Otro", AccountType("ACTIVO"), nil)
		assert.Error(t, err)
	})
}

func TestAccount_SetParent(t *testing.T) {
	a, err := NewAccount(uuid.New(), "1", "Activo", AccountTypeAsset, nil)
	require.NoError(t, err)

	t.Run("cannot be its own parent", func(t *testing.T) {
		self := a.ID
		err := a.SetParent(&self)

		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, CodeAccountSelfParent, de.Code)
		assert.Equal(t, shared.KindValidationFailed, de.Kind)
		assert.Nil(t, a.ParentID)
	})

	t.Run("accepts another parent and clearing", func(t *testing.T) {
		other := uuid.New()
		require.NoError(t, a.SetParent(&other))
		assert.Equal(t, other, *a.ParentID)

		require.NoError(t, a.SetParent(nil))
		assert.Nil(t, a.ParentID)
	})
}

func TestBuildStandardAccounts(t *testing.T) {
	orgID := uuid.New()

	accounts, ids, err := BuildStandardAccounts(orgID)

	require.NoError(t, err)
	assert.Len(t, accounts, len(StandardChart()))
	assert.Len(t, ids, len(accounts))

	seen := map[uuid.UUID]bool{}
	codes := map[string]bool{}
	for _, a := range accounts {
		assert.True(t, a.IsStandard)
		assert.Equal(t, orgID, a.OrganizationID)
		assert.False(t, codes[a.Code], "duplicate code %s", a.Code)
		codes[a.Code] = true
		if a.ParentID != nil {
			assert.True(t, seen[*a.ParentID], "parent of %s must be inserted first", a.Code)
		}
		seen[a.ID] = true
	}
	assert.Equal(t, ids["cash"], findByCode(accounts, "1.1.01").ID)

	t.Run("each call generates fresh ids", func(t *testing.T) {
		_, ids2, err := BuildStandardAccounts(orgID)
		require.NoError(t, err)
		assert.NotEqual(t, ids["assets"], ids2["assets"])
	})

	t.Run("covers every account type", func(t *testing.T) {
		types := map[AccountType]bool{}
		for _, a := range accounts {
			types[a.Type] = true
		}
		for _, typ := range AllAccountTypes() {
			assert.True(t, types[typ], typ)
		}
	})
}

func findByCode(accounts []*Account, code string) *Account {
	for _, a := range accounts {
		if a.Code == code {
			return a
		}
	}
	return nil
}

func TestNewJournalEntry(t *testing.T) {
	orgID := uuid.New()
	debit, credit := uuid.New(), uuid.New()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid entry", func(t *testing.T) {
		e, err := NewJournalEntry(orgID, date, "Compra de cemento", debit, credit, decimal.RequireFromString("1500.50"), "ars")

		require.NoError(t, err)
		assert.Equal(t, "ARS", e.Currency)
		assert.True(t, e.References(debit))
		assert.True(t, e.References(credit))
		assert.False(t, e.References(uuid.New()))
	})

	t.Run("same account on both sides", func(t *testing.T) {
		_, err := NewJournalEntry(orgID, date, "x", debit, debit, decimal.NewFromInt(1), "ARS")
		assert.Error(t, err)
	})

	t.Run("non positive amount", func(t *testing.T) {
		_, err := NewJournalEntry(orgID, date, "x", debit, credit, decimal.Zero, "ARS")
		assert.Error(t, err)
	})

	t.Run("bad currency", func(t *testing.T) {
		_, err := NewJournalEntry(orgID, date, "x", debit, credit, decimal.NewFromInt(1), "PESOS")
		assert.Error(t, err)
	})

	t.Run("amount is rounded before the positivity check", func(t *testing.T) {
		for _, tc := range []struct {
			amount string
			valid  bool
			stored string
		}{
			{"0.00004", false, ""},
			{"0.00005", true, "0.0001"},
			{"10.12345", true, "10.1235"},
		} {
			e, err := NewJournalEntry(orgID, date, "Redondeo", debit, credit, decimal.RequireFromString(tc.amount), "ARS")
			if !tc.valid {
				assert.Error(t, err, tc.amount)
				continue
			}
			require.NoError(t, err, tc.amount)
			assert.True(t, e.Amount.Equal(decimal.RequireFromString(tc.stored)), "%s stored as %s", tc.amount, e.Amount)
		}
	})
}

func TestNewExchangeRate(t *testing.T) {
	orgID := uuid.New()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	r, err := NewExchangeRate(orgID, "usd", "ars", decimal.RequireFromString("850.5"), date)
	require.NoError(t, err)
	assert.Equal(t, "USD", r.FromCurrency)
	assert.True(t, r.Convert(decimal.NewFromInt(2)).Equal(decimal.RequireFromString("1701")))

	_, err = NewExchangeRate(orgID, "USD", "ARS", decimal.RequireFromString("0.0000004"), date)
	assert.Error(t, err, "rate rounds to zero at storage scale")

	_, err = NewExchangeRate(orgID, "USD", "USD", decimal.NewFromInt(1), date)
	assert.Error(t, err)

	_, err = NewExchangeRate(orgID, "USD", "ARS", decimal.NewFromInt(-1), date)
	assert.Error(t, err)
}
