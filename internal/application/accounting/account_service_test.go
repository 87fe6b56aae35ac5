package accounting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func mustAccount(t *testing.T, orgID uuid.UUID, code string, parentID *uuid.UUID) *accounting.Account {
	t.Helper()
	a, err := accounting.NewAccount(orgID, code, "Cuenta "+code, accounting.AccountTypeAsset, parentID)
	require.NoError(t, err)
	return a
}

func TestAccountService_Create(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("parent resolved by code and type label mapped", func(t *testing.T) {
		accounts, journals := new(MockAccountRepository), new(MockJournalEntryRepository)
		parent := mustAccount(t, orgID, "1.1", nil)
		accounts.On("FindByCode", ctx, orgID, "1.1").Return(parent, nil)
		accounts.On("ExistsByCode", ctx, orgID, "1.1.10", (*uuid.UUID)(nil)).Return(false, nil)
		accounts.On("Create", ctx, mock.Anything).Return(nil)

		account, err := NewAccountService(accounts, journals).Create(ctx, orgID, CreateAccountInput{
			Code: "1.1.10", Name: "Fondo fijo", Type: "Activo", ParentCode: "1.1",
		})
		require.NoError(t, err)
		assert.Equal(t, accounting.AccountTypeAsset, account.Type)
		require.NotNil(t, account.ParentID)
		assert.Equal(t, parent.ID, *account.ParentID)
	})

	t.Run("unknown parent is a validation error", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		accounts.On("FindByCode", ctx, orgID, "9").Return(nil, shared.NotFound("account"))

		_, err := NewAccountService(accounts, nil).Create(ctx, orgID, CreateAccountInput{
			Code: "9.1", Name: "Huérfana", Type: "ASSET", ParentCode: "9",
		})
		assert.Equal(t, accounting.CodeAccountInvalidParent, domainCode(t, err))
	})

	t.Run("duplicate code is a conflict", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		accounts.On("ExistsByCode", ctx, orgID, "1", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := NewAccountService(accounts, nil).Create(ctx, orgID, CreateAccountInput{Code: "1", Name: "Activo", Type: "ASSET"})
		assert.True(t, shared.IsKind(err, shared.KindConflict))
		accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := NewAccountService(new(MockAccountRepository), nil).Create(ctx, orgID, CreateAccountInput{Code: "1", Name: "x"})
		assert.Equal(t, "MISSING_ACCOUNT_TYPE", domainCode(t, err))
	})
}

func TestAccountService_UpdateParent(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("an account cannot be its own parent", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		account := mustAccount(t, orgID, "1", nil)
		accounts.On("FindByIDForOrg", ctx, orgID, account.ID).Return(account, nil)

		_, err := NewAccountService(accounts, nil).Update(ctx, orgID, account.ID, UpdateAccountInput{ParentID: &account.ID})
		assert.True(t, shared.IsKind(err, shared.KindValidationFailed))
		assert.Equal(t, accounting.CodeAccountSelfParent, domainCode(t, err))
		accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("a parent chain containing the account is a cycle", func(t *testing.T) {
		// root <- mid <- leaf; making leaf the parent of root closes the loop
		accounts := new(MockAccountRepository)
		root := mustAccount(t, orgID, "1", nil)
		mid := mustAccount(t, orgID, "1.1", &root.ID)
		leaf := mustAccount(t, orgID, "1.1.1", &mid.ID)
		for _, a := range []*accounting.Account{root, mid, leaf} {
			accounts.On("FindByIDForOrg", ctx, orgID, a.ID).Return(a, nil)
		}

		_, err := NewAccountService(accounts, nil).Update(ctx, orgID, root.ID, UpdateAccountInput{ParentID: &leaf.ID})
		assert.Equal(t, accounting.CodeAccountCycle, domainCode(t, err))
		accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("moving under an unrelated branch succeeds", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		assets := mustAccount(t, orgID, "1", nil)
		other := mustAccount(t, orgID, "2", nil)
		child := mustAccount(t, orgID, "1.5", &assets.ID)
		accounts.On("FindByIDForOrg", ctx, orgID, child.ID).Return(child, nil)
		accounts.On("FindByIDForOrg", ctx, orgID, other.ID).Return(other, nil)
		accounts.On("Save", ctx, child).Return(nil)

		updated, err := NewAccountService(accounts, nil).Update(ctx, orgID, child.ID, UpdateAccountInput{ParentID: &other.ID})
		require.NoError(t, err)
		assert.Equal(t, other.ID, *updated.ParentID)
	})
}

func TestAccountService_Delete(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	account := mustAccount(t, orgID, "1", nil)

	t.Run("refuses when children exist", func(t *testing.T) {
		accounts, journals := new(MockAccountRepository), new(MockJournalEntryRepository)
		accounts.On("FindByIDForOrg", ctx, orgID, account.ID).Return(account, nil)
		accounts.On("CountChildren", ctx, orgID, account.ID).Return(int64(2), nil)

		err := NewAccountService(accounts, journals).Delete(ctx, orgID, account.ID)
		assert.Equal(t, accounting.CodeAccountHasChildren, domainCode(t, err))
	})

	t.Run("refuses when journal entries reference it", func(t *testing.T) {
		accounts, journals := new(MockAccountRepository), new(MockJournalEntryRepository)
		accounts.On("FindByIDForOrg", ctx, orgID, account.ID).Return(account, nil)
		accounts.On("CountChildren", ctx, orgID, account.ID).Return(int64(0), nil)
		journals.On("CountReferencing", ctx, orgID, account.ID).Return(int64(1), nil)

		err := NewAccountService(accounts, journals).Delete(ctx, orgID, account.ID)
		assert.Equal(t, accounting.CodeAccountHasEntries, domainCode(t, err))
		accounts.AssertNotCalled(t, "DeleteForOrg", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes a leaf without entries", func(t *testing.T) {
		accounts, journals := new(MockAccountRepository), new(MockJournalEntryRepository)
		accounts.On("FindByIDForOrg", ctx, orgID, account.ID).Return(account, nil)
		accounts.On("CountChildren", ctx, orgID, account.ID).Return(int64(0), nil)
		journals.On("CountReferencing", ctx, orgID, account.ID).Return(int64(0), nil)
		accounts.On("DeleteForOrg", ctx, orgID, account.ID).Return(nil)

		require.NoError(t, NewAccountService(accounts, journals).Delete(ctx, orgID, account.ID))
		accounts.AssertExpectations(t)
	})
}

func TestBuildTree(t *testing.T) {
	orgID := uuid.New()
	root := mustAccount(t, orgID, "1", nil)
	b := mustAccount(t, orgID, "1.2", &root.ID)
	a := mustAccount(t, orgID, "1.1", &root.ID)
	missing := uuid.New()
	orphan := mustAccount(t, orgID, "7", &missing)

	tree := BuildTree([]accounting.Account{*b, *orphan, *root, *a})

	require.Len(t, tree, 2)
	assert.Equal(t, "1", tree[0].Code)
	assert.Equal(t, "7", tree[1].Code, "accounts with a missing parent become roots")
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "1.1", tree[0].Children[0].Code)
}
