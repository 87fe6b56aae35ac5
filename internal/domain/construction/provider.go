package construction

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
)

// Provider is a supplier of materials, equipment or subcontracted work
type Provider struct {
	shared.OrgEntity
	Name     string `gorm:"type:varchar(200);not null"`
	TaxID    string `gorm:"type:varchar(50);index"`
	Category string `gorm:"type:varchar(100)"`
	Email    string `gorm:"type:varchar(200)"`
	Phone    string `gorm:"type:varchar(50)"`
	Address  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Provider) TableName() string {
	return "providers"
}

// ProviderDetails holds the mutable provider fields
type ProviderDetails struct {
	Name     string
	TaxID    string
	Category string
	Email    string
	Phone    string
	Address  string
}

// NewProvider creates a provider
func NewProvider(orgID uuid.UUID, d ProviderDetails) (*Provider, error) {
	p := &Provider{OrgEntity: shared.NewOrgEntity(orgID)}
	if err := p.Update(d); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the provider details
func (p *Provider) Update(d ProviderDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.Validation("INVALID_PROVIDER_NAME", "provider name cannot be empty")
	}
	email := strings.ToLower(strings.TrimSpace(d.Email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.Validation("INVALID_EMAIL", "invalid email address: %q", d.Email)
		}
	}
	p.Name = name
	p.TaxID = strings.TrimSpace(d.TaxID)
	p.Category = strings.TrimSpace(d.Category)
	p.Email = email
	p.Phone = strings.TrimSpace(d.Phone)
	p.Address = strings.TrimSpace(d.Address)
	p.Touch()
	return nil
}
