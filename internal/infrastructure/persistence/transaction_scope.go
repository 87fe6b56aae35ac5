package persistence

import (
	"context"

	appaccounting "github.com/obraerp/backend/internal/application/accounting"
	appidentity "github.com/obraerp/backend/internal/application/identity"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormTransactionScope implements the accounting TransactionScope with GORM
// transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. An error from fn rolls
// the transaction back, otherwise it commits.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appaccounting.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// GormIdentityTransactionScope implements the identity TransactionScope
// used to provision organizations
type GormIdentityTransactionScope struct {
	db *gorm.DB
}

func NewGormIdentityTransactionScope(db *gorm.DB) *GormIdentityTransactionScope {
	return &GormIdentityTransactionScope{db: db}
}

func (s *GormIdentityTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories builds repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Organizations() identity.OrganizationRepository {
	return NewGormOrganizationRepository(r.tx)
}

func (r *gormTransactionalRepositories) Users() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormTransactionalRepositories) Accounts() accounting.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

func (r *gormTransactionalRepositories) JournalEntries() accounting.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

func (r *gormTransactionalRepositories) ExchangeRates() accounting.ExchangeRateRepository {
	return NewGormExchangeRateRepository(r.tx)
}

var (
	_ appaccounting.TransactionScope          = (*GormTransactionScope)(nil)
	_ appaccounting.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ appidentity.TransactionScope            = (*GormIdentityTransactionScope)(nil)
	_ appidentity.TransactionalRepositories   = (*gormTransactionalRepositories)(nil)
)
