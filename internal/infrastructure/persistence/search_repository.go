package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"gorm.io/gorm"
)

// searchSQL unions every searchable table in one round trip. Each branch is
// scoped to @org and matched case-insensitively against @q.
const searchSQL = `
SELECT type, id, title, subtitle FROM (
	SELECT 1 AS rank, 'project' AS type, id, name AS title, code AS subtitle
	FROM projects
	WHERE organization_id = @org AND (LOWER(name) LIKE @q OR LOWER(code) LIKE @q OR LOWER(address) LIKE @q)
	UNION ALL
	SELECT 2, 'client', id, name, tax_id
	FROM clients
	WHERE organization_id = @org AND (LOWER(name) LIKE @q OR LOWER(tax_id) LIKE @q OR LOWER(email) LIKE @q)
	UNION ALL
	SELECT 3, 'employee', id, first_name || ' ' || last_name, position
	FROM employees
	WHERE organization_id = @org AND (LOWER(first_name) LIKE @q OR LOWER(last_name) LIKE @q OR LOWER(document_id) LIKE @q)
	UNION ALL
	SELECT 4, 'provider', id, name, category
	FROM providers
	WHERE organization_id = @org AND (LOWER(name) LIKE @q OR LOWER(tax_id) LIKE @q OR LOWER(category) LIKE @q)
	UNION ALL
	SELECT 5, 'invoice', id, number, kind
	FROM invoices
	WHERE organization_id = @org AND (LOWER(number) LIKE @q OR LOWER(notes) LIKE @q)
	UNION ALL
	SELECT 6, 'inspection', id, title, status
	FROM inspections
	WHERE organization_id = @org AND (LOWER(title) LIKE @q OR LOWER(inspector) LIKE @q)
) hits
ORDER BY rank, title
LIMIT @limit`

// GormSearchRepository implements SearchRepository with a single raw query
type GormSearchRepository struct {
	db *gorm.DB
}

// NewGormSearchRepository creates a new GormSearchRepository
func NewGormSearchRepository(db *gorm.DB) *GormSearchRepository {
	return &GormSearchRepository{db: db}
}

// Search returns at most limit hits across the organization's records
func (r *GormSearchRepository) Search(ctx context.Context, orgID uuid.UUID, term string, limit int) ([]construction.SearchHit, error) {
	if limit <= 0 || limit > construction.MaxSearchResults {
		limit = construction.MaxSearchResults
	}

	var hits []construction.SearchHit
	err := r.db.WithContext(ctx).Raw(searchSQL, map[string]any{
		"org":   orgID,
		"q":     "%" + escapeLike(strings.ToLower(strings.TrimSpace(term))) + "%",
		"limit": limit,
	}).Scan(&hits).Error
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// escapeLike drops the LIKE wildcards from user input
func escapeLike(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}

var _ construction.SearchRepository = (*GormSearchRepository)(nil)
