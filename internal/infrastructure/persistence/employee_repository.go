package persistence

import (
	"github.com/obraerp/backend/internal/domain/construction"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	*GormOrgRepository[construction.Employee]
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{newGormOrgRepository[construction.Employee](db, orgTableOptions{
		resource:      "employee",
		searchColumns: []string{"first_name", "last_name", "document_id", "position"},
		sortFields:    EmployeeSortFields,
		defaultOrder:  "last_name",
		filter:        equalityFilter("status", "position"),
	})}
}

var _ construction.EmployeeRepository = (*GormEmployeeRepository)(nil)
