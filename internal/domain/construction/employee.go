package construction

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EmployeeStatus is the employment state
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "ACTIVE"
	EmployeeStatusInactive EmployeeStatus = "INACTIVE"
	EmployeeStatusOnLeave  EmployeeStatus = "ON_LEAVE"
)

// Employee is a worker on the organization's payroll
type Employee struct {
	shared.OrgEntity
	FirstName  string          `gorm:"type:varchar(100);not null"`
	LastName   string          `gorm:"type:varchar(100);not null"`
	DocumentID string          `gorm:"type:varchar(30);index"`
	Position   string          `gorm:"type:varchar(100)"`
	Email      string          `gorm:"type:varchar(200)"`
	Phone      string          `gorm:"type:varchar(50)"`
	Status     EmployeeStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	HireDate   *time.Time      `gorm:"type:date"`
	DailyRate  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// EmployeeDetails holds the mutable employee fields
type EmployeeDetails struct {
	FirstName  string
	LastName   string
	DocumentID string
	Position   string
	Email      string
	Phone      string
	Status     EmployeeStatus
	HireDate   *time.Time
	DailyRate  decimal.Decimal
}

// NewEmployee creates an employee; an empty status means ACTIVE
func NewEmployee(orgID uuid.UUID, d EmployeeDetails) (*Employee, error) {
	if d.Status == "" {
		d.Status = EmployeeStatusActive
	}
	e := &Employee{OrgEntity: shared.NewOrgEntity(orgID)}
	if err := e.Update(d); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the employee details
func (e *Employee) Update(d EmployeeDetails) error {
	first, last := strings.TrimSpace(d.FirstName), strings.TrimSpace(d.LastName)
	if first == "" || last == "" {
		return shared.Validation("INVALID_EMPLOYEE_NAME", "first and last name are required")
	}
	switch d.Status {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusOnLeave:
	default:
		return shared.Validation("INVALID_EMPLOYEE_STATUS", "invalid employee status: %q", d.Status)
	}
	email := strings.ToLower(strings.TrimSpace(d.Email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.Validation("INVALID_EMAIL", "invalid email address: %q", d.Email)
		}
	}
	if d.DailyRate.IsNegative() {
		return shared.Validation("INVALID_RATE", "daily rate cannot be negative")
	}
	e.FirstName = first
	e.LastName = last
	e.DocumentID = strings.TrimSpace(d.DocumentID)
	e.Position = strings.TrimSpace(d.Position)
	e.Email = email
	e.Phone = strings.TrimSpace(d.Phone)
	e.Status = d.Status
	e.HireDate = d.HireDate
	e.DailyRate = d.DailyRate
	e.Touch()
	return nil
}

// FullName returns "First Last"
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
