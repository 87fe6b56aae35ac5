package identity

import (
	"strings"

	"github.com/obraerp/backend/internal/domain/shared"
)

// Organization is the tenant: the unit of data isolation. Nearly every
// other record carries its ID.
type Organization struct {
	shared.BaseEntity
	Name             string `gorm:"type:varchar(200);not null"`
	TaxID            string `gorm:"type:varchar(50)"`
	Currency         string `gorm:"type:varchar(3);not null;default:'ARS'"`
	EnableAccounting bool   `gorm:"not null;default:false"`
	IsActive         bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates an active organization with accounting disabled
func NewOrganization(name, currency string) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validation("INVALID_ORGANIZATION_NAME", "organization name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.Validation("INVALID_ORGANIZATION_NAME", "organization name cannot exceed 200 characters")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "ARS"
	}
	if len(currency) != 3 {
		return nil, shared.Validation("INVALID_CURRENCY", "currency must be a 3-letter code")
	}
	return &Organization{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Currency:   currency,
		IsActive:   true,
	}, nil
}

// Rename changes the organization display name
func (o *Organization) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Validation("INVALID_ORGANIZATION_NAME", "organization name cannot be empty")
	}
	o.Name = name
	o.Touch()
	return nil
}

// SetTaxID sets the fiscal identifier
func (o *Organization) SetTaxID(taxID string) {
	o.TaxID = strings.TrimSpace(taxID)
	o.Touch()
}

// RequireAccounting returns ErrFeatureDisabled when accounting is off
func (o *Organization) RequireAccounting() error {
	if !o.EnableAccounting {
		return shared.ErrFeatureDisabled
	}
	return nil
}
