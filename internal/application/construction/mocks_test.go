package construction

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// mockOrgRepository mocks the shared organization-scoped methods
type mockOrgRepository[T any] struct {
	mock.Mock
}

func (m *mockOrgRepository[T]) Create(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockOrgRepository[T]) Save(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockOrgRepository[T]) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

func (m *mockOrgRepository[T]) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockOrgRepository[T]) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]T, int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]T), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrgRepository[T]) ExistsForOrg(ctx context.Context, orgID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrgRepository[T]) CountForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrgRepository[T]) ListForOrg(ctx context.Context, orgID uuid.UUID) ([]T, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]T), args.Error(1)
}

type MockClientRepository struct {
	mockOrgRepository[construction.Client]
}

func (m *MockClientRepository) FindByTaxID(ctx context.Context, orgID uuid.UUID, taxID string) (*construction.Client, error) {
	args := m.Called(ctx, orgID, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*construction.Client), args.Error(1)
}

type MockProjectRepository struct {
	mockOrgRepository[construction.Project]
}

func (m *MockProjectRepository) CountByClient(ctx context.Context, orgID, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID, clientID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBudgetItemRepository struct {
	mockOrgRepository[construction.BudgetItem]
}

func (m *MockBudgetItemRepository) FindByProject(ctx context.Context, orgID, projectID uuid.UUID) ([]construction.BudgetItem, error) {
	args := m.Called(ctx, orgID, projectID)
	return args.Get(0).([]construction.BudgetItem), args.Error(1)
}

func (m *MockBudgetItemRepository) DeleteByProject(ctx context.Context, orgID, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID, projectID)
	return args.Get(0).(int64), args.Error(1)
}

type MockInvoiceRepository struct {
	mockOrgRepository[construction.Invoice]
}

func (m *MockInvoiceRepository) ExistsByNumber(ctx context.Context, orgID uuid.UUID, kind construction.InvoiceKind, number string) (bool, error) {
	args := m.Called(ctx, orgID, kind, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) CountByClient(ctx context.Context, orgID, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID, clientID)
	return args.Get(0).(int64), args.Error(1)
}

type MockInspectionRepository struct {
	mockOrgRepository[construction.Inspection]
}

type MockRubroRepository struct {
	mockOrgRepository[construction.Rubro]
}

func (m *MockRubroRepository) ExistsByCode(ctx context.Context, orgID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, code, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) Search(ctx context.Context, orgID uuid.UUID, term string, limit int) ([]construction.SearchHit, error) {
	args := m.Called(ctx, orgID, term, limit)
	return args.Get(0).([]construction.SearchHit), args.Error(1)
}
