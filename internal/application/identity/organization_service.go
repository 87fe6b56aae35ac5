package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/identity"
)

// OrganizationService reads and edits the caller's own organization
type OrganizationService struct {
	orgs identity.OrganizationRepository
}

func NewOrganizationService(orgs identity.OrganizationRepository) *OrganizationService {
	return &OrganizationService{orgs: orgs}
}

func (s *OrganizationService) Get(ctx context.Context, orgID uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	resp := ToOrganizationResponse(org)
	return &resp, nil
}

// Update renames the organization. A nil tax id leaves it unchanged.
func (s *OrganizationService) Update(ctx context.Context, orgID uuid.UUID, req UpdateOrganizationRequest) (*OrganizationResponse, error) {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if err := org.Rename(req.Name); err != nil {
		return nil, err
	}
	if req.TaxID != nil {
		org.SetTaxID(*req.TaxID)
	}
	if err := s.orgs.Save(ctx, org); err != nil {
		return nil, err
	}
	resp := ToOrganizationResponse(org)
	return &resp, nil
}
