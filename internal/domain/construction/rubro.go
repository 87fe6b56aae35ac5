package construction

import (
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
)

// RubroType classifies a rubro
type RubroType string

const (
	RubroTypeMaterial    RubroType = "MATERIAL"
	RubroTypeLabor       RubroType = "LABOR"
	RubroTypeEquipment   RubroType = "EQUIPMENT"
	RubroTypeSubcontract RubroType = "SUBCONTRACT"
	RubroTypeOther       RubroType = "OTHER"
)

// Rubro is a cost category used to tag materials, budget lines and tasks.
// Code is unique within an organization.
type Rubro struct {
	shared.BaseEntity
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rubros_org_code,priority:1"`
	Code           string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_rubros_org_code,priority:2"`
	Name           string    `gorm:"type:varchar(200);not null"`
	Type           RubroType `gorm:"type:varchar(20);not null"`
	Unit           string    `gorm:"type:varchar(20)"`
	Description    string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Rubro) TableName() string {
	return "rubros"
}

// RubroDetails holds the mutable rubro fields
type RubroDetails struct {
	Code        string
	Name        string
	Type        RubroType
	Unit        string
	Description string
}

// NewRubro creates a rubro
func NewRubro(orgID uuid.UUID, d RubroDetails) (*Rubro, error) {
	r := &Rubro{BaseEntity: shared.NewBaseEntity(), OrganizationID: orgID}
	if err := r.Update(d); err != nil {
		return nil, err
	}
	return r, nil
}

// Update replaces the rubro details
func (r *Rubro) Update(d RubroDetails) error {
	code := strings.ToUpper(strings.TrimSpace(d.Code))
	if code == "" {
		return shared.Validation("INVALID_RUBRO_CODE", "rubro code cannot be empty")
	}
	if len(code) > 30 {
		return shared.Validation("INVALID_RUBRO_CODE", "rubro code cannot exceed 30 characters")
	}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.Validation("INVALID_RUBRO_NAME", "rubro name cannot be empty")
	}
	switch d.Type {
	case RubroTypeMaterial, RubroTypeLabor, RubroTypeEquipment, RubroTypeSubcontract, RubroTypeOther:
	default:
		return shared.Validation("INVALID_RUBRO_TYPE", "invalid rubro type: %q", d.Type)
	}
	r.Code = code
	r.Name = name
	r.Type = d.Type
	r.Unit = strings.TrimSpace(d.Unit)
	r.Description = strings.TrimSpace(d.Description)
	r.Touch()
	return nil
}

// BelongsTo reports whether the rubro is owned by orgID
func (r *Rubro) BelongsTo(orgID uuid.UUID) bool {
	return r.OrganizationID == orgID
}
