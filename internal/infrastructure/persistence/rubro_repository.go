package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"gorm.io/gorm"
)

// GormRubroRepository implements RubroRepository using GORM
type GormRubroRepository struct {
	*GormOrgRepository[construction.Rubro]
}

// NewGormRubroRepository creates a new GormRubroRepository
func NewGormRubroRepository(db *gorm.DB) *GormRubroRepository {
	return &GormRubroRepository{newGormOrgRepository[construction.Rubro](db, orgTableOptions{
		resource:      "rubro",
		searchColumns: []string{"code", "name"},
		sortFields:    RubroSortFields,
		defaultOrder:  "code",
		filter:        equalityFilter("type"),
	})}
}

// ExistsByCode reports whether code is used by another rubro of the organization
func (r *GormRubroRepository) ExistsByCode(ctx context.Context, orgID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&construction.Rubro{}).
		Scopes(OrgScope(orgID)).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

var _ construction.RubroRepository = (*GormRubroRepository)(nil)
