package construction

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
)

// ClientRepository defines persistence for clients
type ClientRepository interface {
	shared.OrgRepository[Client]
	FindByTaxID(ctx context.Context, orgID uuid.UUID, taxID string) (*Client, error)
	ListForOrg(ctx context.Context, orgID uuid.UUID) ([]Client, error)
}

// ProjectRepository defines persistence for projects. Reads preload the
// client.
type ProjectRepository interface {
	shared.OrgRepository[Project]
	ListForOrg(ctx context.Context, orgID uuid.UUID) ([]Project, error)
	CountByClient(ctx context.Context, orgID, clientID uuid.UUID) (int64, error)
}

// BudgetItemRepository defines persistence for budget lines
type BudgetItemRepository interface {
	shared.OrgRepository[BudgetItem]
	FindByProject(ctx context.Context, orgID, projectID uuid.UUID) ([]BudgetItem, error)
	DeleteByProject(ctx context.Context, orgID, projectID uuid.UUID) (int64, error)
}

// EmployeeRepository defines persistence for employees
type EmployeeRepository interface {
	shared.OrgRepository[Employee]
}

// ProviderRepository defines persistence for providers
type ProviderRepository interface {
	shared.OrgRepository[Provider]
}

// InvoiceRepository defines persistence for invoices
type InvoiceRepository interface {
	shared.OrgRepository[Invoice]
	ExistsByNumber(ctx context.Context, orgID uuid.UUID, kind InvoiceKind, number string) (bool, error)
	CountByClient(ctx context.Context, orgID, clientID uuid.UUID) (int64, error)
}

// InspectionRepository defines persistence for inspections
type InspectionRepository interface {
	shared.OrgRepository[Inspection]
	ListForOrg(ctx context.Context, orgID uuid.UUID) ([]Inspection, error)
}

// RubroRepository defines persistence for rubros
type RubroRepository interface {
	shared.OrgRepository[Rubro]
	ExistsByCode(ctx context.Context, orgID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error)
}

// SearchResultType names the entity a search hit came from
type SearchResultType string

const (
	SearchTypeProject    SearchResultType = "project"
	SearchTypeClient     SearchResultType = "client"
	SearchTypeEmployee   SearchResultType = "employee"
	SearchTypeProvider   SearchResultType = "provider"
	SearchTypeInvoice    SearchResultType = "invoice"
	SearchTypeInspection SearchResultType = "inspection"
)

// SearchHit is one row of a cross-entity search
type SearchHit struct {
	Type     SearchResultType
	ID       uuid.UUID
	Title    string
	Subtitle string
}

// MaxSearchResults caps a cross-entity search
const MaxSearchResults = 10

// SearchRepository runs the cross-entity text search
type SearchRepository interface {
	Search(ctx context.Context, orgID uuid.UUID, term string, limit int) ([]SearchHit, error)
}
