package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orgTableOptions describes how a listing of one table is searched and sorted
type orgTableOptions struct {
	resource      string
	searchColumns []string
	sortFields    map[string]bool
	defaultOrder  string
	preload       []string
	filter        func(query *gorm.DB, key string, value any) *gorm.DB
}

// GormOrgRepository implements shared.OrgRepository for any entity that
// carries an organization_id column
type GormOrgRepository[T any] struct {
	db   *gorm.DB
	opts orgTableOptions
}

func newGormOrgRepository[T any](db *gorm.DB, opts orgTableOptions) *GormOrgRepository[T] {
	if opts.defaultOrder == "" {
		opts.defaultOrder = "created_at"
	}
	return &GormOrgRepository[T]{db: db, opts: opts}
}

// Create inserts a new entity
func (r *GormOrgRepository[T]) Create(ctx context.Context, entity *T) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
	return translateError(err, r.opts.resource)
}

// Save updates all columns of an entity. Associations are never written.
func (r *GormOrgRepository[T]) Save(ctx context.Context, entity *T) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
	return translateError(err, r.opts.resource)
}

// DeleteForOrg deletes the entity when it belongs to orgID
func (r *GormOrgRepository[T]) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(OrgScope(orgID)).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return translateError(result.Error, r.opts.resource)
	}
	if result.RowsAffected == 0 {
		return shared.NotFound(r.opts.resource)
	}
	return nil
}

// FindByIDForOrg finds an entity by id within one organization
func (r *GormOrgRepository[T]) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*T, error) {
	var entity T
	err := r.preloaded(r.db.WithContext(ctx)).
		Scopes(OrgScope(orgID)).
		Where("id = ?", id).
		First(&entity).Error
	if err != nil {
		return nil, translateError(err, r.opts.resource)
	}
	return &entity, nil
}

// FindAllForOrg returns one page of entities plus the total match count
func (r *GormOrgRepository[T]) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]T, int64, error) {
	filter = filter.Normalize()
	query := r.applyFilter(r.db.WithContext(ctx).Model(new(T)).Scopes(OrgScope(orgID)), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []T
	err := r.preloaded(query).
		Order(r.orderClause(filter)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListForOrg returns every entity of the organization in default order
func (r *GormOrgRepository[T]) ListForOrg(ctx context.Context, orgID uuid.UUID) ([]T, error) {
	var items []T
	err := r.preloaded(r.db.WithContext(ctx)).
		Scopes(OrgScope(orgID)).
		Order(r.opts.defaultOrder + " ASC").
		Find(&items).Error
	return items, err
}

// ExistsForOrg reports whether id exists within the organization
func (r *GormOrgRepository[T]) ExistsForOrg(ctx context.Context, orgID, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).
		Scopes(OrgScope(orgID)).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// CountForOrg counts the organization's entities
func (r *GormOrgRepository[T]) CountForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Scopes(OrgScope(orgID)).Count(&count).Error
	return count, err
}

// countWhere counts the organization's rows matching an extra condition
func (r *GormOrgRepository[T]) countWhere(ctx context.Context, orgID uuid.UUID, cond string, args ...any) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).
		Scopes(OrgScope(orgID)).
		Where(cond, args...).
		Count(&count).Error
	return count, err
}

func (r *GormOrgRepository[T]) preloaded(query *gorm.DB) *gorm.DB {
	for _, assoc := range r.opts.preload {
		query = query.Preload(assoc)
	}
	return query
}

func (r *GormOrgRepository[T]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if term := strings.TrimSpace(filter.Search); term != "" && len(r.opts.searchColumns) > 0 {
		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(r.opts.searchColumns))
		args := make([]any, len(r.opts.searchColumns))
		for i, col := range r.opts.searchColumns {
			conds[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
			args[i] = pattern
		}
		query = query.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	if r.opts.filter != nil {
		for key, value := range filter.Filters {
			query = r.opts.filter(query, key, value)
		}
	}
	return query
}

// orderClause sorts by the requested whitelisted field. Without one, the
// newest rows come first for created_at and otherwise the default column
// ascends.
func (r *GormOrgRepository[T]) orderClause(filter shared.Filter) string {
	if strings.TrimSpace(filter.OrderBy) == "" {
		if r.opts.defaultOrder == "created_at" {
			return "created_at DESC"
		}
		return r.opts.defaultOrder + " ASC"
	}
	field := ValidateSortField(filter.OrderBy, r.opts.sortFields, r.opts.defaultOrder)
	return field + " " + ValidateSortOrder(filter.OrderDir)
}

// equalityFilter builds a filter func that accepts only whitelisted keys
// as column equality conditions
func equalityFilter(columns ...string) func(*gorm.DB, string, any) *gorm.DB {
	allowed := make(map[string]bool, len(columns))
	for _, c := range columns {
		allowed[c] = true
	}
	return func(query *gorm.DB, key string, value any) *gorm.DB {
		if !allowed[key] {
			return query
		}
		return query.Where(key+" = ?", value)
	}
}
