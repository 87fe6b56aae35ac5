package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch updates the modification timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OrgEntity is an entity owned by an organization (tenant). Every query
// for an OrgEntity must be scoped by OrganizationID.
type OrgEntity struct {
	BaseEntity
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// GetOrganizationID returns the owning organization
func (e *OrgEntity) GetOrganizationID() uuid.UUID {
	return e.OrganizationID
}

// BelongsTo reports whether the entity is owned by orgID
func (e *OrgEntity) BelongsTo(orgID uuid.UUID) bool {
	return e.OrganizationID == orgID
}

// NewOrgEntity creates a new organization-owned entity
func NewOrgEntity(orgID uuid.UUID) OrgEntity {
	return OrgEntity{
		BaseEntity:     NewBaseEntity(),
		OrganizationID: orgID,
	}
}
