package construction

import (
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/shopspring/decimal"
)

// ClientRequest is the body of client create and update
type ClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	TaxID   string `json:"taxId" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address" binding:"max=2000"`
	City    string `json:"city" binding:"max=100"`
	Notes   string `json:"notes" binding:"max=2000"`
}

func (r ClientRequest) details() construction.ClientDetails {
	return construction.ClientDetails{
		Name: r.Name, TaxID: r.TaxID, Email: r.Email, Phone: r.Phone,
		Address: r.Address, City: r.City, Notes: r.Notes,
	}
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToClientResponse converts a domain client
func ToClientResponse(c *construction.Client) ClientResponse {
	return ClientResponse{
		ID: c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone,
		Address: c.Address, City: c.City, Notes: c.Notes,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

// ProjectRequest is the body of project create and update. Status accepts
// Spanish or English labels.
type ProjectRequest struct {
	Code        string           `json:"code" binding:"max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=5000"`
	ClientID    *uuid.UUID       `json:"clientId"`
	Status      string           `json:"status"`
	Address     string           `json:"address"`
	StartDate   *time.Time       `json:"startDate"`
	EndDate     *time.Time       `json:"endDate"`
	Budget      *decimal.Decimal `json:"budget"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ClientID    *uuid.UUID      `json:"clientId"`
	ClientName  string          `json:"clientName,omitempty"`
	Status      string          `json:"status"`
	Address     string          `json:"address"`
	StartDate   *time.Time      `json:"startDate"`
	EndDate     *time.Time      `json:"endDate"`
	Budget      decimal.Decimal `json:"budget"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToProjectResponse converts a domain project
func ToProjectResponse(p *construction.Project) ProjectResponse {
	return ProjectResponse{
		ID: p.ID, Code: p.Code, Name: p.Name, Description: p.Description,
		ClientID: p.ClientID, ClientName: p.ClientName(), Status: string(p.Status),
		Address: p.Address, StartDate: p.StartDate, EndDate: p.EndDate, Budget: p.Budget,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

// BudgetItemRequest is the body of budget line create
type BudgetItemRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=300"`
	RubroID     *uuid.UUID      `json:"rubroId"`
	Amount      decimal.Decimal `json:"amount"`
	Executed    decimal.Decimal `json:"executed"`
}

// UpdateBudgetItemRequest changes amounts of a budget line
type UpdateBudgetItemRequest struct {
	Description *string          `json:"description" binding:"omitempty,min=1,max=300"`
	Amount      *decimal.Decimal `json:"amount"`
	Executed    *decimal.Decimal `json:"executed"`
}

// ProgressResponse is computed budget arithmetic
type ProgressResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Executed  decimal.Decimal `json:"executed"`
	Remaining decimal.Decimal `json:"remaining"`
	Progress  decimal.Decimal `json:"progress"`
}

func toProgressResponse(p construction.Progress) ProgressResponse {
	return ProgressResponse{Amount: p.Amount, Executed: p.Executed, Remaining: p.Remaining, Progress: p.Percent}
}

// BudgetItemResponse is a budget line with its computed progress
type BudgetItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"projectId"`
	RubroID     *uuid.UUID `json:"rubroId"`
	Description string     `json:"description"`
	ProgressResponse
}

// ToBudgetItemResponse converts a domain budget line
func ToBudgetItemResponse(b *construction.BudgetItem) BudgetItemResponse {
	return BudgetItemResponse{
		ID: b.ID, ProjectID: b.ProjectID, RubroID: b.RubroID, Description: b.Description,
		ProgressResponse: toProgressResponse(b.Progress()),
	}
}

// BudgetSummaryResponse is the whole budget of a project
type BudgetSummaryResponse struct {
	ProjectID uuid.UUID            `json:"projectId"`
	Items     []BudgetItemResponse `json:"items"`
	Summary   ProgressResponse     `json:"summary"`
}

// EmployeeRequest is the body of employee create and update
type EmployeeRequest struct {
	FirstName  string           `json:"firstName" binding:"required,min=1,max=100"`
	LastName   string           `json:"lastName" binding:"required,min=1,max=100"`
	DocumentID string           `json:"documentId" binding:"max=30"`
	Position   string           `json:"position" binding:"max=100"`
	Email      string           `json:"email" binding:"omitempty,email"`
	Phone      string           `json:"phone" binding:"max=50"`
	Status     string           `json:"status"`
	HireDate   *time.Time       `json:"hireDate"`
	DailyRate  *decimal.Decimal `json:"dailyRate"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID         uuid.UUID       `json:"id"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	FullName   string          `json:"fullName"`
	DocumentID string          `json:"documentId"`
	Position   string          `json:"position"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Status     string          `json:"status"`
	HireDate   *time.Time      `json:"hireDate"`
	DailyRate  decimal.Decimal `json:"dailyRate"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToEmployeeResponse converts a domain employee
func ToEmployeeResponse(e *construction.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID: e.ID, FirstName: e.FirstName, LastName: e.LastName, FullName: e.FullName(),
		DocumentID: e.DocumentID, Position: e.Position, Email: e.Email, Phone: e.Phone,
		Status: string(e.Status), HireDate: e.HireDate, DailyRate: e.DailyRate, CreatedAt: e.CreatedAt,
	}
}

// ProviderRequest is the body of provider create and update
type ProviderRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	TaxID    string `json:"taxId" binding:"max=50"`
	Category string `json:"category" binding:"max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"max=50"`
	Address  string `json:"address"`
}

// ProviderResponse represents a provider in API responses
type ProviderResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId"`
	Category  string    `json:"category"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToProviderResponse converts a domain provider
func ToProviderResponse(p *construction.Provider) ProviderResponse {
	return ProviderResponse{
		ID: p.ID, Name: p.Name, TaxID: p.TaxID, Category: p.Category,
		Email: p.Email, Phone: p.Phone, Address: p.Address, CreatedAt: p.CreatedAt,
	}
}

// InvoiceRequest is the body of invoice create
type InvoiceRequest struct {
	Number     string          `json:"number" binding:"required,min=1,max=50"`
	Kind       string          `json:"kind" binding:"required,oneof=RECEIVABLE PAYABLE"`
	ClientID   *uuid.UUID      `json:"clientId"`
	ProviderID *uuid.UUID      `json:"providerId"`
	ProjectID  *uuid.UUID      `json:"projectId"`
	IssueDate  time.Time       `json:"issueDate" binding:"required"`
	DueDate    *time.Time      `json:"dueDate"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency" binding:"required,len=3"`
	Notes      string          `json:"notes"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	Kind       string          `json:"kind"`
	Status     string          `json:"status"`
	ClientID   *uuid.UUID      `json:"clientId"`
	ProviderID *uuid.UUID      `json:"providerId"`
	ProjectID  *uuid.UUID      `json:"projectId"`
	IssueDate  time.Time       `json:"issueDate"`
	DueDate    *time.Time      `json:"dueDate"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToInvoiceResponse converts a domain invoice
func ToInvoiceResponse(i *construction.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID: i.ID, Number: i.Number, Kind: string(i.Kind), Status: string(i.Status),
		ClientID: i.ClientID, ProviderID: i.ProviderID, ProjectID: i.ProjectID,
		IssueDate: i.IssueDate, DueDate: i.DueDate, Amount: i.Amount, Currency: i.Currency,
		Notes: i.Notes, CreatedAt: i.CreatedAt,
	}
}

// InspectionRequest is the body of inspection create and update. Type,
// status and priority accept Spanish or English labels.
type InspectionRequest struct {
	ProjectID     uuid.UUID `json:"projectId" binding:"required"`
	Title         string    `json:"title" binding:"required,min=1,max=200"`
	Type          string    `json:"type" binding:"required"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	Inspector     string    `json:"inspector" binding:"max=200"`
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
	Findings      string    `json:"findings"`
}

// InspectionResponse represents an inspection in API responses
type InspectionResponse struct {
	ID            uuid.UUID `json:"id"`
	ProjectID     uuid.UUID `json:"projectId"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	Inspector     string    `json:"inspector"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Findings      string    `json:"findings"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToInspectionResponse converts a domain inspection
func ToInspectionResponse(in *construction.Inspection) InspectionResponse {
	return InspectionResponse{
		ID: in.ID, ProjectID: in.ProjectID, Title: in.Title, Type: string(in.Type),
		Status: string(in.Status), Priority: string(in.Priority), Inspector: in.Inspector,
		ScheduledDate: in.ScheduledDate, Findings: in.Findings, CreatedAt: in.CreatedAt,
	}
}

// RubroRequest is the body of rubro create and update
type RubroRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=30"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Type        string `json:"type" binding:"required"`
	Unit        string `json:"unit" binding:"max=20"`
	Description string `json:"description"`
}

// RubroResponse represents a rubro in API responses
type RubroResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Unit        string    `json:"unit"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToRubroResponse converts a domain rubro
func ToRubroResponse(r *construction.Rubro) RubroResponse {
	return RubroResponse{
		ID: r.ID, Code: r.Code, Name: r.Name, Type: string(r.Type),
		Unit: r.Unit, Description: r.Description, CreatedAt: r.CreatedAt,
	}
}

// SearchResultResponse is one hit of the global search
type SearchResultResponse struct {
	Type     string    `json:"type"`
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
}

// mapSlice converts a page of entities
func mapSlice[T any, R any](items []T, fn func(*T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
