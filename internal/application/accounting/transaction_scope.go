package accounting

import (
	"context"

	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/identity"
)

// TransactionScope provides transactional access to accounting repositories.
// All repository operations inside Execute commit or roll back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction. An error from fn
	// rolls the transaction back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to one transaction
type TransactionalRepositories interface {
	Organizations() identity.OrganizationRepository
	Accounts() accounting.AccountRepository
	JournalEntries() accounting.JournalEntryRepository
	ExchangeRates() accounting.ExchangeRateRepository
}

// NoOpTransactionScope runs fn against plain repositories without a
// transaction. Used by tests.
type NoOpTransactionScope struct {
	orgs     identity.OrganizationRepository
	accounts accounting.AccountRepository
	journals accounting.JournalEntryRepository
	rates    accounting.ExchangeRateRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	orgs identity.OrganizationRepository,
	accounts accounting.AccountRepository,
	journals accounting.JournalEntryRepository,
	rates accounting.ExchangeRateRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{orgs: orgs, accounts: accounts, journals: journals, rates: rates}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Organizations() identity.OrganizationRepository { return s.orgs }
func (s *NoOpTransactionScope) Accounts() accounting.AccountRepository { return s.accounts }
func (s *NoOpTransactionScope) JournalEntries() accounting.JournalEntryRepository { return s.journals }
func (s *NoOpTransactionScope) ExchangeRates() accounting.ExchangeRateRepository { return s.rates }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
