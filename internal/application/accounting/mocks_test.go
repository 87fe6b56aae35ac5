package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *accounting.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) CreateBatch(ctx context.Context, accounts []*accounting.Account) error {
	return m.Called(ctx, accounts).Error(0)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

func (m *MockAccountRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*accounting.Account, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*accounting.Account, error) {
	args := m.Called(ctx, orgID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter accounting.AccountFilter) ([]accounting.Account, int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]accounting.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) ListForOrg(ctx context.Context, orgID uuid.UUID) ([]accounting.Account, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindStandard(ctx context.Context, orgID uuid.UUID) ([]accounting.Account, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByCode(ctx context.Context, orgID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) HasStandard(ctx context.Context, orgID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) CountChildren(ctx context.Context, orgID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) CountByType(ctx context.Context, orgID uuid.UUID) (map[accounting.AccountType]int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(map[accounting.AccountType]int64), args.Error(1)
}

func (m *MockAccountRepository) CountStandard(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

// MockJournalEntryRepository is a mock implementation of JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) Create(ctx context.Context, entry *accounting.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournalEntryRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

func (m *MockJournalEntryRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*accounting.JournalEntry, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter accounting.JournalEntryFilter) ([]accounting.JournalEntry, int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]accounting.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalEntryRepository) ListForOrg(ctx context.Context, orgID uuid.UUID) ([]accounting.JournalEntry, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) CountReferencing(ctx context.Context, orgID, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalEntryRepository) CountForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalEntryRepository) DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

// MockExchangeRateRepository is a mock implementation of ExchangeRateRepository
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) Create(ctx context.Context, rate *accounting.ExchangeRate) error {
	return m.Called(ctx, rate).Error(0)
}

func (m *MockExchangeRateRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

func (m *MockExchangeRateRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*accounting.ExchangeRate, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]accounting.ExchangeRate, int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]accounting.ExchangeRate), args.Get(1).(int64), args.Error(2)
}

func (m *MockExchangeRateRepository) FindLatest(ctx context.Context, orgID uuid.UUID, from, to string, date time.Time) (*accounting.ExchangeRate, error) {
	args := m.Called(ctx, orgID, from, to, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) CountForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExchangeRateRepository) DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrganizationRepository is a mock implementation of OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *identity.Organization) error {
	return m.Called(ctx, org).Error(0)
}

func (m *MockOrganizationRepository) Save(ctx context.Context, org *identity.Organization) error {
	return m.Called(ctx, org).Error(0)
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Organization, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Organization), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrganizationRepository) FindAccountingEnabledIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
