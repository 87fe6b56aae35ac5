package persistence

import (
	"github.com/obraerp/backend/internal/domain/construction"
	"gorm.io/gorm"
)

// GormProviderRepository implements ProviderRepository using GORM
type GormProviderRepository struct {
	*GormOrgRepository[construction.Provider]
}

// NewGormProviderRepository creates a new GormProviderRepository
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{newGormOrgRepository[construction.Provider](db, orgTableOptions{
		resource:      "provider",
		searchColumns: []string{"name", "tax_id", "category"},
		sortFields:    ProviderSortFields,
		defaultOrder:  "name",
		filter:        equalityFilter("category"),
	})}
}

var _ construction.ProviderRepository = (*GormProviderRepository)(nil)
