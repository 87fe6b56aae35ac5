package construction

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type projectFixture struct {
	projects *MockProjectRepository
	clients  *MockClientRepository
	budget   *MockBudgetItemRepository
	rubros   *MockRubroRepository
	svc      *ProjectService
}

func newProjectFixture() projectFixture {
	f := projectFixture{
		projects: new(MockProjectRepository),
		clients:  new(MockClientRepository),
		budget:   new(MockBudgetItemRepository),
		rubros:   new(MockRubroRepository),
	}
	f.svc = NewProjectService(f.projects, f.clients, f.budget, f.rubros)
	return f
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("maps a Spanish status label", func(t *testing.T) {
		f := newProjectFixture()
		var created *construction.Project
		f.projects.On("Create", ctx, mock.AnythingOfType("*construction.Project")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*construction.Project) }).
			Return(nil)
		f.projects.On("FindByIDForOrg", ctx, orgID, mock.Anything).Return(&construction.Project{}, nil)

		_, err := f.svc.Create(ctx, orgID, ProjectRequest{Name: "Edificio", Status: "En curso"})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, construction.ProjectStatusInProgress, created.Status)
	})

	t.Run("blank status defaults to planning", func(t *testing.T) {
		f := newProjectFixture()
		var created *construction.Project
		f.projects.On("Create", ctx, mock.Anything).
			Run(func(args mock.Arguments) { created = args.Get(1).(*construction.Project) }).
			Return(nil)
		f.projects.On("FindByIDForOrg", ctx, orgID, mock.Anything).Return(&construction.Project{}, nil)

		_, err := f.svc.Create(ctx, orgID, ProjectRequest{Name: "Edificio"})
		require.NoError(t, err)
		assert.Equal(t, construction.ProjectStatusPlanning, created.Status)
	})

	t.Run("unknown status is rejected, not defaulted", func(t *testing.T) {
		f := newProjectFixture()
		_, err := f.svc.Create(ctx, orgID, ProjectRequest{Name: "Edificio", Status: "volando"})
		assert.True(t, shared.IsKind(err, shared.KindValidationFailed))
		f.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("client from another organization is invalid", func(t *testing.T) {
		f := newProjectFixture()
		clientID := uuid.New()
		f.clients.On("ExistsForOrg", ctx, orgID, clientID).Return(false, nil)

		_, err := f.svc.Create(ctx, orgID, ProjectRequest{Name: "Edificio", ClientID: &clientID})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidationFailed))
	})
}

func TestProjectService_Budget(t *testing.T) {
	ctx := context.Background()
	orgID, projectID := uuid.New(), uuid.New()

	f := newProjectFixture()
	f.projects.On("FindByIDForOrg", ctx, orgID, projectID).Return(&construction.Project{}, nil)

	a, _ := construction.NewBudgetItem(orgID, projectID, nil, "Estructura", decimal.NewFromInt(800))
	_ = a.SetExecuted(decimal.NewFromInt(200))
	b, _ := construction.NewBudgetItem(orgID, projectID, nil, "Terminaciones", decimal.Zero)
	f.budget.On("FindByProject", ctx, orgID, projectID).Return([]construction.BudgetItem{*a, *b}, nil)

	summary, err := f.svc.Budget(ctx, orgID, projectID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 2)

	assert.True(t, summary.Items[0].Remaining.Equal(decimal.NewFromInt(600)))
	assert.True(t, summary.Items[0].Progress.Equal(decimal.NewFromInt(25)))
	assert.True(t, summary.Items[1].Progress.IsZero(), "zero amount reports zero progress")
	assert.True(t, summary.Summary.Amount.Equal(decimal.NewFromInt(800)))
	assert.True(t, summary.Summary.Progress.Equal(decimal.NewFromInt(25)))
}

func TestProjectService_UpdateBudgetItem_WrongProject(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	f := newProjectFixture()

	item, _ := construction.NewBudgetItem(orgID, uuid.New(), nil, "Estructura", decimal.NewFromInt(1))
	f.budget.On("FindByIDForOrg", ctx, orgID, item.ID).Return(item, nil)

	amount := decimal.NewFromInt(5)
	_, err := f.svc.UpdateBudgetItem(ctx, orgID, uuid.New(), item.ID, UpdateBudgetItemRequest{Amount: &amount})
	assert.True(t, shared.IsKind(err, shared.KindNotFound))
	f.budget.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProjectService_DeleteRemovesBudget(t *testing.T) {
	ctx := context.Background()
	orgID, projectID := uuid.New(), uuid.New()
	f := newProjectFixture()

	f.projects.On("FindByIDForOrg", ctx, orgID, projectID).Return(&construction.Project{}, nil)
	f.budget.On("DeleteByProject", ctx, orgID, projectID).Return(int64(3), nil)
	f.projects.On("DeleteForOrg", ctx, orgID, projectID).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, orgID, projectID))
	f.budget.AssertExpectations(t)
	f.projects.AssertExpectations(t)
}
