package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
)

// AccountFilter narrows account listings
type AccountFilter struct {
	shared.Filter
	Type       *AccountType
	ParentID   *uuid.UUID
	IsStandard *bool
}

// AccountRepository defines persistence for accounts. Every method is
// scoped to one organization.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	CreateBatch(ctx context.Context, accounts []*Account) error
	Save(ctx context.Context, account *Account) error
	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Account, error)
	FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*Account, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter AccountFilter) ([]Account, int64, error)
	// ListForOrg returns every account ordered by code, for trees and exports
	ListForOrg(ctx context.Context, orgID uuid.UUID) ([]Account, error)
	FindStandard(ctx context.Context, orgID uuid.UUID) ([]Account, error)
	ExistsByCode(ctx context.Context, orgID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error)
	HasStandard(ctx context.Context, orgID uuid.UUID) (bool, error)
	CountChildren(ctx context.Context, orgID, id uuid.UUID) (int64, error)
	CountByType(ctx context.Context, orgID uuid.UUID) (map[AccountType]int64, error)
	CountStandard(ctx context.Context, orgID uuid.UUID) (int64, error)
	// DeleteAllForOrg removes the whole chart; parent links are cleared first
	DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error)
}

// JournalEntryFilter narrows journal entry listings
type JournalEntryFilter struct {
	shared.Filter
	AccountID *uuid.UUID
	ProjectID *uuid.UUID
	From      *time.Time
	To        *time.Time
}

// JournalEntryRepository defines persistence for journal entries
type JournalEntryRepository interface {
	Create(ctx context.Context, entry *JournalEntry) error
	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*JournalEntry, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter JournalEntryFilter) ([]JournalEntry, int64, error)
	// ListForOrg returns every entry ordered by date, for exports
	ListForOrg(ctx context.Context, orgID uuid.UUID) ([]JournalEntry, error)
	// CountReferencing counts entries using accountID as debit or credit
	CountReferencing(ctx context.Context, orgID, accountID uuid.UUID) (int64, error)
	CountForOrg(ctx context.Context, orgID uuid.UUID) (int64, error)
	DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error)
}

// ExchangeRateRepository defines persistence for exchange rates
type ExchangeRateRepository interface {
	Create(ctx context.Context, rate *ExchangeRate) error
	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*ExchangeRate, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]ExchangeRate, int64, error)
	// FindLatest returns the most recent rate on or before date
	FindLatest(ctx context.Context, orgID uuid.UUID, from, to string, date time.Time) (*ExchangeRate, error)
	CountForOrg(ctx context.Context, orgID uuid.UUID) (int64, error)
	DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error)
}
