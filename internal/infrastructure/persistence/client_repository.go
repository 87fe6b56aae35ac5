package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	*GormOrgRepository[construction.Client]
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{newGormOrgRepository[construction.Client](db, orgTableOptions{
		resource:      "client",
		searchColumns: []string{"name", "tax_id", "email", "city"},
		sortFields:    ClientSortFields,
		defaultOrder:  "name",
		filter:        equalityFilter("city"),
	})}
}

// FindByTaxID finds a client by tax id within an organization
func (r *GormClientRepository) FindByTaxID(ctx context.Context, orgID uuid.UUID, taxID string) (*construction.Client, error) {
	var client construction.Client
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(orgID)).
		Where("tax_id = ?", strings.TrimSpace(taxID)).
		First(&client).Error
	if err != nil {
		return nil, translateError(err, "client")
	}
	return &client, nil
}

var _ construction.ClientRepository = (*GormClientRepository)(nil)
