package construction

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/localization"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProjectService handles projects and their budgets
type ProjectService struct {
	projects construction.ProjectRepository
	clients  construction.ClientRepository
	budget   construction.BudgetItemRepository
	rubros   construction.RubroRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projects construction.ProjectRepository,
	clients construction.ClientRepository,
	budget construction.BudgetItemRepository,
	rubros construction.RubroRepository,
) *ProjectService {
	return &ProjectService{projects: projects, clients: clients, budget: budget, rubros: rubros}
}

// Create creates a project; a blank status means PLANNING
func (s *ProjectService) Create(ctx context.Context, orgID uuid.UUID, req ProjectRequest) (*ProjectResponse, error) {
	details, err := s.details(ctx, orgID, req)
	if err != nil {
		return nil, err
	}
	project, err := construction.NewProject(orgID, details)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return s.Get(ctx, orgID, project.ID)
}

// Update replaces a project's details
func (s *ProjectService) Update(ctx context.Context, orgID, id uuid.UUID, req ProjectRequest) (*ProjectResponse, error) {
	project, err := s.projects.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	details, err := s.details(ctx, orgID, req)
	if err != nil {
		return nil, err
	}
	if err := project.Update(details); err != nil {
		return nil, err
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return s.Get(ctx, orgID, project.ID)
}

// Delete removes a project and its budget lines
func (s *ProjectService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.projects.FindByIDForOrg(ctx, orgID, id); err != nil {
		return err
	}
	if _, err := s.budget.DeleteByProject(ctx, orgID, id); err != nil {
		return err
	}
	return s.projects.DeleteForOrg(ctx, orgID, id)
}

// Get returns one project with its client name
func (s *ProjectService) Get(ctx context.Context, orgID, id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projects.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToProjectResponse(project)
	return &resp, nil
}

// List returns one page of projects
func (s *ProjectService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[ProjectResponse], error) {
	f := filter.Normalize()
	projects, total, err := s.projects.FindAllForOrg(ctx, orgID, f)
	if err != nil {
		return shared.Paginated[ProjectResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(projects, ToProjectResponse), total, f.Page, f.PageSize), nil
}

// All returns every project with its client loaded
func (s *ProjectService) All(ctx context.Context, orgID uuid.UUID) ([]construction.Project, error) {
	return s.projects.ListForOrg(ctx, orgID)
}

func (s *ProjectService) details(ctx context.Context, orgID uuid.UUID, req ProjectRequest) (construction.ProjectDetails, error) {
	status, err := localization.ProjectStatus.MapOrDefault(req.Status, string(construction.ProjectStatusPlanning))
	if err != nil {
		return construction.ProjectDetails{}, err
	}
	if req.ClientID != nil {
		ok, err := s.clients.ExistsForOrg(ctx, orgID, *req.ClientID)
		if err != nil {
			return construction.ProjectDetails{}, err
		}
		if !ok {
			return construction.ProjectDetails{}, shared.Validation("INVALID_CLIENT", "client does not exist")
		}
	}
	budget := decimal.Zero
	if req.Budget != nil {
		budget = *req.Budget
	}
	return construction.ProjectDetails{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		Status:      construction.ProjectStatus(status),
		Address:     req.Address,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      budget,
	}, nil
}

// Budget returns every line of the project with computed progress and the
// aggregated summary
func (s *ProjectService) Budget(ctx context.Context, orgID, projectID uuid.UUID) (*BudgetSummaryResponse, error) {
	if _, err := s.projects.FindByIDForOrg(ctx, orgID, projectID); err != nil {
		return nil, err
	}
	items, err := s.budget.FindByProject(ctx, orgID, projectID)
	if err != nil {
		return nil, err
	}
	return &BudgetSummaryResponse{
		ProjectID: projectID,
		Items:     mapSlice(items, ToBudgetItemResponse),
		Summary:   toProgressResponse(construction.SummarizeBudget(items)),
	}, nil
}

// AddBudgetItem adds a line to a project's budget
func (s *ProjectService) AddBudgetItem(ctx context.Context, orgID, projectID uuid.UUID, req BudgetItemRequest) (*BudgetItemResponse, error) {
	if _, err := s.projects.FindByIDForOrg(ctx, orgID, projectID); err != nil {
		return nil, err
	}
	if req.RubroID != nil {
		ok, err := s.rubros.ExistsForOrg(ctx, orgID, *req.RubroID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.Validation("INVALID_RUBRO", "rubro does not exist")
		}
	}
	item, err := construction.NewBudgetItem(orgID, projectID, req.RubroID, req.Description, req.Amount)
	if err != nil {
		return nil, err
	}
	if err := item.SetExecuted(req.Executed); err != nil {
		return nil, err
	}
	if err := s.budget.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := ToBudgetItemResponse(item)
	return &resp, nil
}

// UpdateBudgetItem changes a budget line. The line must belong to projectID.
func (s *ProjectService) UpdateBudgetItem(ctx context.Context, orgID, projectID, itemID uuid.UUID, req UpdateBudgetItemRequest) (*BudgetItemResponse, error) {
	item, err := s.findItem(ctx, orgID, projectID, itemID)
	if err != nil {
		return nil, err
	}
	if req.Description != nil {
		if err := item.SetDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Amount != nil {
		if err := item.SetAmount(*req.Amount); err != nil {
			return nil, err
		}
	}
	if req.Executed != nil {
		if err := item.SetExecuted(*req.Executed); err != nil {
			return nil, err
		}
	}
	if err := s.budget.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToBudgetItemResponse(item)
	return &resp, nil
}

// DeleteBudgetItem removes a budget line
func (s *ProjectService) DeleteBudgetItem(ctx context.Context, orgID, projectID, itemID uuid.UUID) error {
	if _, err := s.findItem(ctx, orgID, projectID, itemID); err != nil {
		return err
	}
	return s.budget.DeleteForOrg(ctx, orgID, itemID)
}

func (s *ProjectService) findItem(ctx context.Context, orgID, projectID, itemID uuid.UUID) (*construction.BudgetItem, error) {
	item, err := s.budget.FindByIDForOrg(ctx, orgID, itemID)
	if err != nil {
		return nil, err
	}
	if item.ProjectID != projectID {
		return nil, shared.NotFound("budget item")
	}
	return item, nil
}
