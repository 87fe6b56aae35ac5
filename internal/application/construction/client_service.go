package construction

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/shared"
)

// ClientService handles client operations
type ClientService struct {
	clients  construction.ClientRepository
	projects construction.ProjectRepository
	invoices construction.InvoiceRepository
}

// NewClientService creates a new ClientService
func NewClientService(
	clients construction.ClientRepository,
	projects construction.ProjectRepository,
	invoices construction.InvoiceRepository,
) *ClientService {
	return &ClientService{clients: clients, projects: projects, invoices: invoices}
}

// Create creates a client. A tax id already used by another client of the
// organization is a conflict.
func (s *ClientService) Create(ctx context.Context, orgID uuid.UUID, req ClientRequest) (*ClientResponse, error) {
	client, err := construction.NewClient(orgID, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.ensureTaxIDFree(ctx, orgID, client.TaxID, nil); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// Update replaces a client's details
func (s *ClientService) Update(ctx context.Context, orgID, id uuid.UUID, req ClientRequest) (*ClientResponse, error) {
	client, err := s.clients.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := client.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.ensureTaxIDFree(ctx, orgID, client.TaxID, &client.ID); err != nil {
		return nil, err
	}
	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// Delete removes a client that no project or invoice references
func (s *ClientService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.clients.FindByIDForOrg(ctx, orgID, id); err != nil {
		return err
	}
	projects, err := s.projects.CountByClient(ctx, orgID, id)
	if err != nil {
		return err
	}
	if projects > 0 {
		return shared.Validation("CLIENT_HAS_PROJECTS", "client has %d project(s)", projects)
	}
	invoices, err := s.invoices.CountByClient(ctx, orgID, id)
	if err != nil {
		return err
	}
	if invoices > 0 {
		return shared.Validation("CLIENT_HAS_INVOICES", "client has %d invoice(s)", invoices)
	}
	return s.clients.DeleteForOrg(ctx, orgID, id)
}

// Get returns one client
func (s *ClientService) Get(ctx context.Context, orgID, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// List returns one page of clients
func (s *ClientService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[ClientResponse], error) {
	f := filter.Normalize()
	clients, total, err := s.clients.FindAllForOrg(ctx, orgID, f)
	if err != nil {
		return shared.Paginated[ClientResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(clients, ToClientResponse), total, f.Page, f.PageSize), nil
}

// All returns every client ordered by name
func (s *ClientService) All(ctx context.Context, orgID uuid.UUID) ([]construction.Client, error) {
	return s.clients.ListForOrg(ctx, orgID)
}

func (s *ClientService) ensureTaxIDFree(ctx context.Context, orgID uuid.UUID, taxID string, self *uuid.UUID) error {
	if taxID == "" {
		return nil
	}
	existing, err := s.clients.FindByTaxID(ctx, orgID, taxID)
	if shared.IsKind(err, shared.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if self != nil && existing.ID == *self {
		return nil
	}
	return shared.Conflict("CLIENT_DUPLICATE_TAX_ID", "a client with tax id %s already exists", taxID)
}
