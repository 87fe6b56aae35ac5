package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"gorm.io/gorm"
)

// GormProjectRepository implements ProjectRepository using GORM. Reads
// preload the client.
type GormProjectRepository struct {
	*GormOrgRepository[construction.Project]
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{newGormOrgRepository[construction.Project](db, orgTableOptions{
		resource:      "project",
		searchColumns: []string{"name", "code", "address"},
		sortFields:    ProjectSortFields,
		defaultOrder:  "name",
		preload:       []string{"Client"},
		filter:        equalityFilter("status", "client_id"),
	})}
}

// CountByClient counts projects referencing a client
func (r *GormProjectRepository) CountByClient(ctx context.Context, orgID, clientID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, orgID, "client_id = ?", clientID)
}

var _ construction.ProjectRepository = (*GormProjectRepository)(nil)
