package construction

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceKind distinguishes invoices issued to clients from invoices
// received from providers
type InvoiceKind string

const (
	InvoiceKindReceivable InvoiceKind = "RECEIVABLE"
	InvoiceKindPayable    InvoiceKind = "PAYABLE"
)

// InvoiceStatus is the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is a billing document tied to a client or a provider
type Invoice struct {
	shared.OrgEntity
	Number     string          `gorm:"type:varchar(50);not null;index"`
	Kind       InvoiceKind     `gorm:"type:varchar(20);not null"`
	Status     InvoiceStatus   `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ClientID   *uuid.UUID      `gorm:"type:uuid;index"`
	ProviderID *uuid.UUID      `gorm:"type:uuid;index"`
	ProjectID  *uuid.UUID      `gorm:"type:uuid;index"`
	IssueDate  time.Time       `gorm:"type:date;not null"`
	DueDate    *time.Time      `gorm:"type:date"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency   string          `gorm:"type:varchar(3);not null"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceDetails holds invoice creation fields
type InvoiceDetails struct {
	Number     string
	Kind       InvoiceKind
	ClientID   *uuid.UUID
	ProviderID *uuid.UUID
	ProjectID  *uuid.UUID
	IssueDate  time.Time
	DueDate    *time.Time
	Amount     decimal.Decimal
	Currency   string
	Notes      string
}

// NewInvoice creates a pending invoice. A receivable needs a client, a
// payable needs a provider.
func NewInvoice(orgID uuid.UUID, d InvoiceDetails) (*Invoice, error) {
	number := strings.TrimSpace(d.Number)
	if number == "" {
		return nil, shared.Validation("INVALID_INVOICE_NUMBER", "invoice number cannot be empty")
	}
	switch d.Kind {
	case InvoiceKindReceivable:
		if d.ClientID == nil {
			return nil, shared.Validation("INVOICE_CLIENT_REQUIRED", "a receivable invoice requires a client")
		}
	case InvoiceKindPayable:
		if d.ProviderID == nil {
			return nil, shared.Validation("INVOICE_PROVIDER_REQUIRED", "a payable invoice requires a provider")
		}
	default:
		return nil, shared.Validation("INVALID_INVOICE_KIND", "invalid invoice kind: %q", d.Kind)
	}
	if !d.Amount.IsPositive() {
		return nil, shared.Validation("INVALID_AMOUNT", "invoice amount must be greater than zero")
	}
	if d.IssueDate.IsZero() {
		return nil, shared.Validation("INVALID_DATE", "issue date is required")
	}
	if d.DueDate != nil && d.DueDate.Before(d.IssueDate) {
		return nil, shared.Validation("INVALID_DATE", "due date cannot be before issue date")
	}
	currency := strings.ToUpper(strings.TrimSpace(d.Currency))
	if len(currency) != 3 {
		return nil, shared.Validation("INVALID_CURRENCY", "currency must be a 3-letter code")
	}
	return &Invoice{
		OrgEntity:  shared.NewOrgEntity(orgID),
		Number:     number,
		Kind:       d.Kind,
		Status:     InvoiceStatusPending,
		ClientID:   d.ClientID,
		ProviderID: d.ProviderID,
		ProjectID:  d.ProjectID,
		IssueDate:  d.IssueDate,
		DueDate:    d.DueDate,
		Amount:     d.Amount,
		Currency:   currency,
		Notes:      strings.TrimSpace(d.Notes),
	}, nil
}

// MarkPaid settles a pending invoice
func (i *Invoice) MarkPaid() error {
	if i.Status != InvoiceStatusPending {
		return shared.Validation("INVALID_INVOICE_STATE", "only pending invoices can be paid")
	}
	i.Status = InvoiceStatusPaid
	i.Touch()
	return nil
}

// Cancel voids a pending invoice
func (i *Invoice) Cancel() error {
	if i.Status != InvoiceStatusPending {
		return shared.Validation("INVALID_INVOICE_STATE", "only pending invoices can be cancelled")
	}
	i.Status = InvoiceStatusCancelled
	i.Touch()
	return nil
}
