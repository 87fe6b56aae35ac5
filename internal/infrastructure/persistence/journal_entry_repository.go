package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"gorm.io/gorm"
)

// GormJournalEntryRepository implements JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db   *gorm.DB
	base *GormOrgRepository[accounting.JournalEntry]
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{
		db: db,
		base: newGormOrgRepository[accounting.JournalEntry](db, orgTableOptions{
			resource:      "journal entry",
			searchColumns: []string{"description", "reference"},
			sortFields:    JournalEntrySortFields,
		}),
	}
}

// Create inserts a journal entry
func (r *GormJournalEntryRepository) Create(ctx context.Context, entry *accounting.JournalEntry) error {
	return r.base.Create(ctx, entry)
}

// DeleteForOrg deletes one entry of the organization
func (r *GormJournalEntryRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	return r.base.DeleteForOrg(ctx, orgID, id)
}

// FindByIDForOrg finds an entry by id within the organization
func (r *GormJournalEntryRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*accounting.JournalEntry, error) {
	return r.base.FindByIDForOrg(ctx, orgID, id)
}

// FindAllForOrg returns one page of entries, newest first by default
func (r *GormJournalEntryRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter accounting.JournalEntryFilter) ([]accounting.JournalEntry, int64, error) {
	f := filter.Filter.Normalize()
	query := r.base.applyFilter(r.db.WithContext(ctx).Model(&accounting.JournalEntry{}).Scopes(OrgScope(orgID)), f)
	if filter.AccountID != nil {
		query = query.Where("(debit_account_id = ? OR credit_account_id = ?)", *filter.AccountID, *filter.AccountID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "date DESC, created_at DESC"
	if f.OrderBy != "" {
		order = r.base.orderClause(f)
	}
	var entries []accounting.JournalEntry
	err := query.Order(order).Offset(f.Offset()).Limit(f.PageSize).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListForOrg returns every entry of the organization, oldest first
func (r *GormJournalEntryRepository) ListForOrg(ctx context.Context, orgID uuid.UUID) ([]accounting.JournalEntry, error) {
	var entries []accounting.JournalEntry
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(orgID)).
		Order("date ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

// CountReferencing counts entries that debit or credit accountID
func (r *GormJournalEntryRepository) CountReferencing(ctx context.Context, orgID, accountID uuid.UUID) (int64, error) {
	return r.base.countWhere(ctx, orgID, "debit_account_id = ? OR credit_account_id = ?", accountID, accountID)
}

// CountForOrg counts the organization's entries
func (r *GormJournalEntryRepository) CountForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	return r.base.CountForOrg(ctx, orgID)
}

// DeleteAllForOrg removes every entry of the organization
func (r *GormJournalEntryRepository) DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Scopes(OrgScope(orgID)).Delete(&accounting.JournalEntry{})
	return result.RowsAffected, result.Error
}

var _ accounting.JournalEntryRepository = (*GormJournalEntryRepository)(nil)
