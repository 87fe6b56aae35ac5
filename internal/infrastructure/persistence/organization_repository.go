package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrganizationRepository implements OrganizationRepository using GORM
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create inserts an organization
func (r *GormOrganizationRepository) Create(ctx context.Context, org *identity.Organization) error {
	return translateError(r.db.WithContext(ctx).Create(org).Error, "organization")
}

// Save updates an organization
func (r *GormOrganizationRepository) Save(ctx context.Context, org *identity.Organization) error {
	return translateError(r.db.WithContext(ctx).Save(org).Error, "organization")
}

// FindByID finds an organization by id
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds an organization and locks its row. SQLite
// ignores the locking clause.
func (r *GormOrganizationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrganizationRepository) find(query *gorm.DB, id uuid.UUID) (*identity.Organization, error) {
	var org identity.Organization
	if err := query.Where("id = ?", id).First(&org).Error; err != nil {
		return nil, translateError(err, "organization")
	}
	return &org, nil
}

// FindAll returns one page of organizations
func (r *GormOrganizationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Organization, int64, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).Model(&identity.Organization{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+toLowerTrim(filter.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	field := ValidateSortField(filter.OrderBy, OrganizationSortFields, "created_at")
	var orgs []identity.Organization
	err := query.Order(field + " " + ValidateSortOrder(filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&orgs).Error
	return orgs, total, err
}

// FindAccountingEnabledIDs lists organizations with accounting turned on
func (r *GormOrganizationRepository) FindAccountingEnabledIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&identity.Organization{}).
		Where("enable_accounting = ?", true).
		Pluck("id", &ids).Error
	return ids, err
}

var _ identity.OrganizationRepository = (*GormOrganizationRepository)(nil)
