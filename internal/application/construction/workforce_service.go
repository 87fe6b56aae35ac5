package construction

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/localization"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EmployeeService handles employee operations
type EmployeeService struct {
	employees construction.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employees construction.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

func employeeDetails(req EmployeeRequest) (construction.EmployeeDetails, error) {
	status, err := localization.EmployeeStatus.MapOrDefault(req.Status, string(construction.EmployeeStatusActive))
	if err != nil {
		return construction.EmployeeDetails{}, err
	}
	rate := decimal.Zero
	if req.DailyRate != nil {
		rate = *req.DailyRate
	}
	return construction.EmployeeDetails{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		DocumentID: req.DocumentID,
		Position:   req.Position,
		Email:      req.Email,
		Phone:      req.Phone,
		Status:     construction.EmployeeStatus(status),
		HireDate:   req.HireDate,
		DailyRate:  rate,
	}, nil
}

// Create creates an employee
func (s *EmployeeService) Create(ctx context.Context, orgID uuid.UUID, req EmployeeRequest) (*EmployeeResponse, error) {
	details, err := employeeDetails(req)
	if err != nil {
		return nil, err
	}
	employee, err := construction.NewEmployee(orgID, details)
	if err != nil {
		return nil, err
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Update replaces an employee's details
func (s *EmployeeService) Update(ctx context.Context, orgID, id uuid.UUID, req EmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employees.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	details, err := employeeDetails(req)
	if err != nil {
		return nil, err
	}
	if err := employee.Update(details); err != nil {
		return nil, err
	}
	if err := s.employees.Save(ctx, employee); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Delete removes an employee
func (s *EmployeeService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.employees.DeleteForOrg(ctx, orgID, id)
}

// Get returns one employee
func (s *EmployeeService) Get(ctx context.Context, orgID, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employees.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// List returns one page of employees
func (s *EmployeeService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[EmployeeResponse], error) {
	f := filter.Normalize()
	employees, total, err := s.employees.FindAllForOrg(ctx, orgID, f)
	if err != nil {
		return shared.Paginated[EmployeeResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(employees, ToEmployeeResponse), total, f.Page, f.PageSize), nil
}

// ProviderService handles provider operations
type ProviderService struct {
	providers construction.ProviderRepository
}

// NewProviderService creates a new ProviderService
func NewProviderService(providers construction.ProviderRepository) *ProviderService {
	return &ProviderService{providers: providers}
}

func (r ProviderRequest) details() construction.ProviderDetails {
	return construction.ProviderDetails{
		Name: r.Name, TaxID: r.TaxID, Category: r.Category,
		Email: r.Email, Phone: r.Phone, Address: r.Address,
	}
}

// Create creates a provider
func (s *ProviderService) Create(ctx context.Context, orgID uuid.UUID, req ProviderRequest) (*ProviderResponse, error) {
	provider, err := construction.NewProvider(orgID, req.details())
	if err != nil {
		return nil, err
	}
	if err := s.providers.Create(ctx, provider); err != nil {
		return nil, err
	}
	resp := ToProviderResponse(provider)
	return &resp, nil
}

// Update replaces a provider's details
func (s *ProviderService) Update(ctx context.Context, orgID, id uuid.UUID, req ProviderRequest) (*ProviderResponse, error) {
	provider, err := s.providers.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := provider.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.providers.Save(ctx, provider); err != nil {
		return nil, err
	}
	resp := ToProviderResponse(provider)
	return &resp, nil
}

// Delete removes a provider
func (s *ProviderService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.providers.DeleteForOrg(ctx, orgID, id)
}

// Get returns one provider
func (s *ProviderService) Get(ctx context.Context, orgID, id uuid.UUID) (*ProviderResponse, error) {
	provider, err := s.providers.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToProviderResponse(provider)
	return &resp, nil
}

// List returns one page of providers
func (s *ProviderService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[ProviderResponse], error) {
	f := filter.Normalize()
	providers, total, err := s.providers.FindAllForOrg(ctx, orgID, f)
	if err != nil {
		return shared.Paginated[ProviderResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(providers, ToProviderResponse), total, f.Page, f.PageSize), nil
}
