package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
)

// OrganizationRepository defines persistence for organizations
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	Save(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Organization, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Organization, int64, error)
	// FindAccountingEnabledIDs lists organizations with accounting turned on
	FindAccountingEnabledIDs(ctx context.Context) ([]uuid.UUID, error)
}

// UserRepository defines persistence for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Save(ctx context.Context, user *User) error
	// FindByEmail is not tenant scoped: email is globally unique and is
	// used to resolve the organization at login.
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*User, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
