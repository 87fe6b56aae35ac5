package persistence

import (
	"github.com/obraerp/backend/internal/domain/construction"
	"gorm.io/gorm"
)

// GormInspectionRepository implements InspectionRepository using GORM
type GormInspectionRepository struct {
	*GormOrgRepository[construction.Inspection]
}

// NewGormInspectionRepository creates a new GormInspectionRepository
func NewGormInspectionRepository(db *gorm.DB) *GormInspectionRepository {
	return &GormInspectionRepository{newGormOrgRepository[construction.Inspection](db, orgTableOptions{
		resource:      "inspection",
		searchColumns: []string{"title", "inspector", "findings"},
		sortFields:    InspectionSortFields,
		defaultOrder:  "scheduled_date",
		filter:        equalityFilter("project_id", "status", "priority", "type"),
	})}
}

var _ construction.InspectionRepository = (*GormInspectionRepository)(nil)
