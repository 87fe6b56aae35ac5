package construction

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/shared"
)

// InvoiceService handles invoices
type InvoiceService struct {
	invoices  construction.InvoiceRepository
	clients   construction.ClientRepository
	providers construction.ProviderRepository
	projects  construction.ProjectRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoices construction.InvoiceRepository,
	clients construction.ClientRepository,
	providers construction.ProviderRepository,
	projects construction.ProjectRepository,
) *InvoiceService {
	return &InvoiceService{invoices: invoices, clients: clients, providers: providers, projects: projects}
}

// Create creates a pending invoice. Referenced client, provider and
// project must belong to the organization, and the number must be unique
// per kind.
func (s *InvoiceService) Create(ctx context.Context, orgID uuid.UUID, req InvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := construction.NewInvoice(orgID, construction.InvoiceDetails{
		Number:     req.Number,
		Kind:       construction.InvoiceKind(req.Kind),
		ClientID:   req.ClientID,
		ProviderID: req.ProviderID,
		ProjectID:  req.ProjectID,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, err
	}

	refs := []struct {
		id   *uuid.UUID
		repo interface {
			ExistsForOrg(ctx context.Context, orgID, id uuid.UUID) (bool, error)
		}
		code string
	}{
		{req.ClientID, s.clients, "INVALID_CLIENT"},
		{req.ProviderID, s.providers, "INVALID_PROVIDER"},
		{req.ProjectID, s.projects, "INVALID_PROJECT"},
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		ok, err := ref.repo.ExistsForOrg(ctx, orgID, *ref.id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.Validation(ref.code, "referenced record does not exist")
		}
	}

	taken, err := s.invoices.ExistsByNumber(ctx, orgID, invoice.Kind, invoice.Number)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.Conflict("INVOICE_DUPLICATE_NUMBER", "invoice %s already exists", invoice.Number)
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// MarkPaid settles a pending invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, orgID, id uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, orgID, id, (*construction.Invoice).MarkPaid)
}

// Cancel voids a pending invoice
func (s *InvoiceService) Cancel(ctx context.Context, orgID, id uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, orgID, id, (*construction.Invoice).Cancel)
}

func (s *InvoiceService) transition(ctx context.Context, orgID, id uuid.UUID, apply func(*construction.Invoice) error) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(invoice); err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Delete removes an invoice
func (s *InvoiceService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.invoices.DeleteForOrg(ctx, orgID, id)
}

// Get returns one invoice
func (s *InvoiceService) Get(ctx context.Context, orgID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// List returns one page of invoices
func (s *InvoiceService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[InvoiceResponse], error) {
	f := filter.Normalize()
	invoices, total, err := s.invoices.FindAllForOrg(ctx, orgID, f)
	if err != nil {
		return shared.Paginated[InvoiceResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(invoices, ToInvoiceResponse), total, f.Page, f.PageSize), nil
}
