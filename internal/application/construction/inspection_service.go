package construction

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/localization"
	"github.com/obraerp/backend/internal/domain/shared"
)

// InspectionService handles site inspections
type InspectionService struct {
	inspections construction.InspectionRepository
	projects    construction.ProjectRepository
}

// NewInspectionService creates a new InspectionService
func NewInspectionService(inspections construction.InspectionRepository, projects construction.ProjectRepository) *InspectionService {
	return &InspectionService{inspections: inspections, projects: projects}
}

// inspectionDetails maps the localized labels. Only a blank priority
// falls back to MEDIUM; an unknown one is rejected.
func (s *InspectionService) inspectionDetails(ctx context.Context, orgID uuid.UUID, req InspectionRequest) (construction.InspectionDetails, error) {
	typ, err := localization.InspectionType.MapRequired(req.Type)
	if err != nil {
		return construction.InspectionDetails{}, err
	}
	status, err := localization.InspectionStatus.MapOrDefault(req.Status, string(construction.InspectionStatusPending))
	if err != nil {
		return construction.InspectionDetails{}, err
	}
	priority, err := localization.InspectionPriority.MapOrDefault(req.Priority, string(construction.PriorityMedium))
	if err != nil {
		return construction.InspectionDetails{}, err
	}

	ok, err := s.projects.ExistsForOrg(ctx, orgID, req.ProjectID)
	if err != nil {
		return construction.InspectionDetails{}, err
	}
	if !ok {
		return construction.InspectionDetails{}, shared.Validation("INVALID_PROJECT", "project does not exist")
	}

	return construction.InspectionDetails{
		ProjectID:     req.ProjectID,
		Title:         req.Title,
		Type:          construction.InspectionType(typ),
		Status:        construction.InspectionStatus(status),
		Priority:      construction.InspectionPriority(priority),
		Inspector:     req.Inspector,
		ScheduledDate: req.ScheduledDate,
		Findings:      req.Findings,
	}, nil
}

// Create schedules an inspection
func (s *InspectionService) Create(ctx context.Context, orgID uuid.UUID, req InspectionRequest) (*InspectionResponse, error) {
	details, err := s.inspectionDetails(ctx, orgID, req)
	if err != nil {
		return nil, err
	}
	inspection, err := construction.NewInspection(orgID, details)
	if err != nil {
		return nil, err
	}
	if err := s.inspections.Create(ctx, inspection); err != nil {
		return nil, err
	}
	resp := ToInspectionResponse(inspection)
	return &resp, nil
}

// Update replaces an inspection's details
func (s *InspectionService) Update(ctx context.Context, orgID, id uuid.UUID, req InspectionRequest) (*InspectionResponse, error) {
	inspection, err := s.inspections.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	details, err := s.inspectionDetails(ctx, orgID, req)
	if err != nil {
		return nil, err
	}
	if err := inspection.Update(details); err != nil {
		return nil, err
	}
	if err := s.inspections.Save(ctx, inspection); err != nil {
		return nil, err
	}
	resp := ToInspectionResponse(inspection)
	return &resp, nil
}

// Delete removes an inspection
func (s *InspectionService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.inspections.DeleteForOrg(ctx, orgID, id)
}

// Get returns one inspection
func (s *InspectionService) Get(ctx context.Context, orgID, id uuid.UUID) (*InspectionResponse, error) {
	inspection, err := s.inspections.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToInspectionResponse(inspection)
	return &resp, nil
}

// List returns one page of inspections
func (s *InspectionService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[InspectionResponse], error) {
	f := filter.Normalize()
	inspections, total, err := s.inspections.FindAllForOrg(ctx, orgID, f)
	if err != nil {
		return shared.Paginated[InspectionResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(inspections, ToInspectionResponse), total, f.Page, f.PageSize), nil
}

// All returns every inspection ordered by scheduled date
func (s *InspectionService) All(ctx context.Context, orgID uuid.UUID) ([]construction.Inspection, error) {
	return s.inspections.ListForOrg(ctx, orgID)
}
