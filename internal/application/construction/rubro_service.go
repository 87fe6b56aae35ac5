package construction

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/localization"
	"github.com/obraerp/backend/internal/domain/shared"
)

// RubroService handles rubros. Codes are unique per organization.
type RubroService struct {
	rubros construction.RubroRepository
}

// NewRubroService creates a new RubroService
func NewRubroService(rubros construction.RubroRepository) *RubroService {
	return &RubroService{rubros: rubros}
}

func rubroDetails(req RubroRequest) (construction.RubroDetails, error) {
	typ, err := localization.RubroType.MapRequired(req.Type)
	if err != nil {
		return construction.RubroDetails{}, err
	}
	return construction.RubroDetails{
		Code:        req.Code,
		Name:        req.Name,
		Type:        construction.RubroType(typ),
		Unit:        req.Unit,
		Description: req.Description,
	}, nil
}

// Create creates a rubro
func (s *RubroService) Create(ctx context.Context, orgID uuid.UUID, req RubroRequest) (*RubroResponse, error) {
	details, err := rubroDetails(req)
	if err != nil {
		return nil, err
	}
	rubro, err := construction.NewRubro(orgID, details)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, orgID, rubro.Code, nil); err != nil {
		return nil, err
	}
	if err := s.rubros.Create(ctx, rubro); err != nil {
		return nil, err
	}
	resp := ToRubroResponse(rubro)
	return &resp, nil
}

// Update replaces a rubro's details
func (s *RubroService) Update(ctx context.Context, orgID, id uuid.UUID, req RubroRequest) (*RubroResponse, error) {
	rubro, err := s.rubros.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	details, err := rubroDetails(req)
	if err != nil {
		return nil, err
	}
	if err := rubro.Update(details); err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, orgID, rubro.Code, &rubro.ID); err != nil {
		return nil, err
	}
	if err := s.rubros.Save(ctx, rubro); err != nil {
		return nil, err
	}
	resp := ToRubroResponse(rubro)
	return &resp, nil
}

// Delete removes a rubro
func (s *RubroService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.rubros.DeleteForOrg(ctx, orgID, id)
}

// Get returns one rubro
func (s *RubroService) Get(ctx context.Context, orgID, id uuid.UUID) (*RubroResponse, error) {
	rubro, err := s.rubros.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToRubroResponse(rubro)
	return &resp, nil
}

// List returns one page of rubros
func (s *RubroService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[RubroResponse], error) {
	f := filter.Normalize()
	rubros, total, err := s.rubros.FindAllForOrg(ctx, orgID, f)
	if err != nil {
		return shared.Paginated[RubroResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(rubros, ToRubroResponse), total, f.Page, f.PageSize), nil
}

func (s *RubroService) ensureCodeFree(ctx context.Context, orgID uuid.UUID, code string, excludeID *uuid.UUID) error {
	taken, err := s.rubros.ExistsByCode(ctx, orgID, code, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.Conflict("RUBRO_DUPLICATE_CODE", "rubro code %s already exists", code)
	}
	return nil
}
