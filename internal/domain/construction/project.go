package construction

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProjectStatus is the lifecycle state of a construction project
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "PLANNING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusOnHold     ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
)

// Project is a construction job (an "obra")
type Project struct {
	shared.OrgEntity
	Code        string          `gorm:"type:varchar(50);index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	ClientID    *uuid.UUID      `gorm:"type:uuid;index"`
	Status      ProjectStatus   `gorm:"type:varchar(20);not null;default:'PLANNING'"`
	Address     string          `gorm:"type:text"`
	StartDate   *time.Time      `gorm:"type:date"`
	EndDate     *time.Time      `gorm:"type:date"`
	Budget      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Client *Client `gorm:"foreignKey:ClientID"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// ProjectDetails holds the mutable project fields
type ProjectDetails struct {
	Code        string
	Name        string
	Description string
	ClientID    *uuid.UUID
	Status      ProjectStatus
	Address     string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      decimal.Decimal
}

// NewProject creates a project; an empty status means PLANNING
func NewProject(orgID uuid.UUID, d ProjectDetails) (*Project, error) {
	if d.Status == "" {
		d.Status = ProjectStatusPlanning
	}
	p := &Project{OrgEntity: shared.NewOrgEntity(orgID)}
	if err := p.Update(d); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the project details
func (p *Project) Update(d ProjectDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.Validation("INVALID_PROJECT_NAME", "project name cannot be empty")
	}
	switch d.Status {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
	default:
		return shared.Validation("INVALID_PROJECT_STATUS", "invalid project status: %q", d.Status)
	}
	if d.Budget.IsNegative() {
		return shared.Validation("INVALID_BUDGET", "budget cannot be negative")
	}
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return shared.Validation("INVALID_DATES", "end date cannot be before start date")
	}
	p.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	p.Name = name
	p.Description = strings.TrimSpace(d.Description)
	p.ClientID = d.ClientID
	p.Status = d.Status
	p.Address = strings.TrimSpace(d.Address)
	p.StartDate = d.StartDate
	p.EndDate = d.EndDate
	p.Budget = d.Budget
	p.Touch()
	return nil
}

// ClientName returns the loaded client's name, if any
func (p *Project) ClientName() string {
	if p.Client == nil {
		return ""
	}
	return p.Client.Name
}
