package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"gorm.io/gorm"
)

// GormBudgetItemRepository implements BudgetItemRepository using GORM
type GormBudgetItemRepository struct {
	*GormOrgRepository[construction.BudgetItem]
}

// NewGormBudgetItemRepository creates a new GormBudgetItemRepository
func NewGormBudgetItemRepository(db *gorm.DB) *GormBudgetItemRepository {
	return &GormBudgetItemRepository{newGormOrgRepository[construction.BudgetItem](db, orgTableOptions{
		resource:      "budget item",
		searchColumns: []string{"description"},
		sortFields:    BudgetItemSortFields,
		filter:        equalityFilter("project_id", "rubro_id"),
	})}
}

// FindByProject lists the budget lines of a project
func (r *GormBudgetItemRepository) FindByProject(ctx context.Context, orgID, projectID uuid.UUID) ([]construction.BudgetItem, error) {
	var items []construction.BudgetItem
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(orgID)).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// DeleteByProject removes all budget lines of a project
func (r *GormBudgetItemRepository) DeleteByProject(ctx context.Context, orgID, projectID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(OrgScope(orgID)).
		Where("project_id = ?", projectID).
		Delete(&construction.BudgetItem{})
	return result.RowsAffected, result.Error
}

var _ construction.BudgetItemRepository = (*GormBudgetItemRepository)(nil)
