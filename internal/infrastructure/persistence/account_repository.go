package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db   *gorm.DB
	base *GormOrgRepository[accounting.Account]
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{
		db: db,
		base: newGormOrgRepository[accounting.Account](db, orgTableOptions{
			resource:      "account",
			searchColumns: []string{"code", "name"},
			sortFields:    AccountSortFields,
			defaultOrder:  "code",
		}),
	}
}

// Create inserts an account
func (r *GormAccountRepository) Create(ctx context.Context, account *accounting.Account) error {
	return r.base.Create(ctx, account)
}

// CreateBatch inserts accounts in order, so parents precede children
func (r *GormAccountRepository) CreateBatch(ctx context.Context, accounts []*accounting.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).CreateInBatches(accounts, 100).Error
	return translateError(err, "account")
}

// Save updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	return r.base.Save(ctx, account)
}

// DeleteForOrg deletes one account of the organization
func (r *GormAccountRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	return r.base.DeleteForOrg(ctx, orgID, id)
}

// FindByIDForOrg finds an account by id within the organization
func (r *GormAccountRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*accounting.Account, error) {
	return r.base.FindByIDForOrg(ctx, orgID, id)
}

// FindByCode finds an account by its code within the organization
func (r *GormAccountRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*accounting.Account, error) {
	var account accounting.Account
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(orgID)).
		Where("code = ?", strings.TrimSpace(code)).
		First(&account).Error
	if err != nil {
		return nil, translateError(err, "account")
	}
	return &account, nil
}

// FindAllForOrg returns one page of accounts
func (r *GormAccountRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter accounting.AccountFilter) ([]accounting.Account, int64, error) {
	f := filter.Filter.Normalize()
	query := r.base.applyFilter(r.db.WithContext(ctx).Model(&accounting.Account{}).Scopes(OrgScope(orgID)), f)
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}
	if filter.IsStandard != nil {
		query = query.Where("is_standard = ?", *filter.IsStandard)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []accounting.Account
	err := query.Order(r.base.orderClause(f)).
		Offset(f.Offset()).
		Limit(f.PageSize).
		Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// ListForOrg returns the whole chart ordered by code
func (r *GormAccountRepository) ListForOrg(ctx context.Context, orgID uuid.UUID) ([]accounting.Account, error) {
	return r.base.ListForOrg(ctx, orgID)
}

// FindStandard returns the seeded accounts ordered by code
func (r *GormAccountRepository) FindStandard(ctx context.Context, orgID uuid.UUID) ([]accounting.Account, error) {
	var accounts []accounting.Account
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(orgID)).
		Where("is_standard = ?", true).
		Order("code ASC").
		Find(&accounts).Error
	return accounts, err
}

// ExistsByCode reports whether code is taken by another account of the organization
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, orgID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&accounting.Account{}).
		Scopes(OrgScope(orgID)).
		Where("code = ?", strings.TrimSpace(code))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// HasStandard reports whether at least one standard account exists
func (r *GormAccountRepository) HasStandard(ctx context.Context, orgID uuid.UUID) (bool, error) {
	count, err := r.CountStandard(ctx, orgID)
	return count > 0, err
}

// CountChildren counts accounts whose parent is id
func (r *GormAccountRepository) CountChildren(ctx context.Context, orgID, id uuid.UUID) (int64, error) {
	return r.base.countWhere(ctx, orgID, "parent_id = ?", id)
}

// CountByType counts accounts per type
func (r *GormAccountRepository) CountByType(ctx context.Context, orgID uuid.UUID) (map[accounting.AccountType]int64, error) {
	var rows []struct {
		Type  accounting.AccountType
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&accounting.Account{}).
		Scopes(OrgScope(orgID)).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[accounting.AccountType]int64, len(accounting.AllAccountTypes()))
	for _, t := range accounting.AllAccountTypes() {
		counts[t] = 0
	}
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

// CountStandard counts seeded accounts
func (r *GormAccountRepository) CountStandard(ctx context.Context, orgID uuid.UUID) (int64, error) {
	return r.base.countWhere(ctx, orgID, "is_standard = ?", true)
}

// DeleteAllForOrg removes the organization's chart. Parent links are
// cleared first so the self reference never blocks the delete.
func (r *GormAccountRepository) DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := db.Model(&accounting.Account{}).
		Scopes(OrgScope(orgID)).
		Where("parent_id IS NOT NULL").
		Update("parent_id", nil).Error; err != nil {
		return 0, err
	}
	result := db.Scopes(OrgScope(orgID)).Delete(&accounting.Account{})
	return result.RowsAffected, result.Error
}

var _ accounting.AccountRepository = (*GormAccountRepository)(nil)
