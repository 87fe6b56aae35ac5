package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	*GormOrgRepository[construction.Invoice]
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{newGormOrgRepository[construction.Invoice](db, orgTableOptions{
		resource:      "invoice",
		searchColumns: []string{"number", "notes"},
		sortFields:    InvoiceSortFields,
		defaultOrder:  "issue_date",
		filter:        equalityFilter("kind", "status", "client_id", "provider_id", "project_id"),
	})}
}

// ExistsByNumber reports whether an invoice number is taken for a kind
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, orgID uuid.UUID, kind construction.InvoiceKind, number string) (bool, error) {
	count, err := r.countWhere(ctx, orgID, "kind = ? AND number = ?", kind, strings.TrimSpace(number))
	return count > 0, err
}

// CountByClient counts invoices referencing a client
func (r *GormInvoiceRepository) CountByClient(ctx context.Context, orgID, clientID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, orgID, "client_id = ?", clientID)
}

var _ construction.InvoiceRepository = (*GormInvoiceRepository)(nil)
