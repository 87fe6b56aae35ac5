package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProjectLookup checks that a project belongs to an organization
type ProjectLookup interface {
	ExistsForOrg(ctx context.Context, orgID, id uuid.UUID) (bool, error)
}

// CreateJournalEntryInput holds the fields of a new journal entry
type CreateJournalEntryInput struct {
	Date            time.Time
	Description     string
	Reference       string
	DebitAccountID  uuid.UUID
	CreditAccountID uuid.UUID
	Amount          decimal.Decimal
	Currency        string
	ProjectID       *uuid.UUID
}

// JournalService records journal entries
type JournalService struct {
	entries  accounting.JournalEntryRepository
	accounts accounting.AccountRepository
	projects ProjectLookup
}

// NewJournalService creates a new JournalService
func NewJournalService(entries accounting.JournalEntryRepository, accounts accounting.AccountRepository, projects ProjectLookup) *JournalService {
	return &JournalService{entries: entries, accounts: accounts, projects: projects}
}

// Create records an entry after checking that both accounts, and the
// project when given, belong to the organization
func (s *JournalService) Create(ctx context.Context, orgID uuid.UUID, in CreateJournalEntryInput) (*accounting.JournalEntry, error) {
	entry, err := accounting.NewJournalEntry(orgID, in.Date, in.Description, in.DebitAccountID, in.CreditAccountID, in.Amount, in.Currency)
	if err != nil {
		return nil, err
	}
	entry.Reference = in.Reference

	for _, id := range []uuid.UUID{in.DebitAccountID, in.CreditAccountID} {
		account, err := s.accounts.FindByIDForOrg(ctx, orgID, id)
		if err != nil {
			if shared.IsKind(err, shared.KindNotFound) {
				return nil, shared.Validation("INVALID_ACCOUNT", "account %s does not exist", id)
			}
			return nil, err
		}
		if !account.IsActive {
			return nil, shared.Validation("INACTIVE_ACCOUNT", "account %s is inactive", account.Code)
		}
	}

	if in.ProjectID != nil {
		ok, err := s.projects.ExistsForOrg(ctx, orgID, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.Validation("INVALID_PROJECT", "project does not exist")
		}
		entry.ProjectID = in.ProjectID
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get returns one entry
func (s *JournalService) Get(ctx context.Context, orgID, id uuid.UUID) (*accounting.JournalEntry, error) {
	return s.entries.FindByIDForOrg(ctx, orgID, id)
}

// List returns a page of entries
func (s *JournalService) List(ctx context.Context, orgID uuid.UUID, filter accounting.JournalEntryFilter) (shared.Paginated[accounting.JournalEntry], error) {
	filter.Filter = filter.Filter.Normalize()
	items, total, err := s.entries.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return shared.Paginated[accounting.JournalEntry]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// All returns every entry of the organization, oldest first
func (s *JournalService) All(ctx context.Context, orgID uuid.UUID) ([]accounting.JournalEntry, error) {
	return s.entries.ListForOrg(ctx, orgID)
}

// Delete removes an entry
func (s *JournalService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.entries.DeleteForOrg(ctx, orgID, id)
}

// ExchangeRateService manages exchange rates
type ExchangeRateService struct {
	rates accounting.ExchangeRateRepository
}

// NewExchangeRateService creates a new ExchangeRateService
func NewExchangeRateService(rates accounting.ExchangeRateRepository) *ExchangeRateService {
	return &ExchangeRateService{rates: rates}
}

// Create records a rate
func (s *ExchangeRateService) Create(ctx context.Context, orgID uuid.UUID, from, to string, rate decimal.Decimal, date time.Time) (*accounting.ExchangeRate, error) {
	r, err := accounting.NewExchangeRate(orgID, from, to, rate, date)
	if err != nil {
		return nil, err
	}
	if err := s.rates.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Get returns one rate
func (s *ExchangeRateService) Get(ctx context.Context, orgID, id uuid.UUID) (*accounting.ExchangeRate, error) {
	return s.rates.FindByIDForOrg(ctx, orgID, id)
}

// List returns a page of rates
func (s *ExchangeRateService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[accounting.ExchangeRate], error) {
	filter = filter.Normalize()
	items, total, err := s.rates.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return shared.Paginated[accounting.ExchangeRate]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Delete removes a rate
func (s *ExchangeRateService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.rates.DeleteForOrg(ctx, orgID, id)
}

// Convert converts amount with the latest rate dated on or before date
func (s *ExchangeRateService) Convert(ctx context.Context, orgID uuid.UUID, from, to string, amount decimal.Decimal, date time.Time) (decimal.Decimal, *accounting.ExchangeRate, error) {
	rate, err := s.rates.FindLatest(ctx, orgID, from, to, date)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return rate.Convert(amount), rate, nil
}
