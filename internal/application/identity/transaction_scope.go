package identity

import (
	"context"

	"github.com/obraerp/backend/internal/domain/identity"
)

// TransactionScope runs tenant provisioning atomically
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to one transaction
type TransactionalRepositories interface {
	Organizations() identity.OrganizationRepository
	Users() identity.UserRepository
}

// NoOpTransactionScope runs fn against plain repositories. Used by tests.
type NoOpTransactionScope struct {
	orgs  identity.OrganizationRepository
	users identity.UserRepository
}

func NewNoOpTransactionScope(orgs identity.OrganizationRepository, users identity.UserRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{orgs: orgs, users: users}
}

func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) Organizations() identity.OrganizationRepository { return s.orgs }
func (s *NoOpTransactionScope) Users() identity.UserRepository { return s.users }
