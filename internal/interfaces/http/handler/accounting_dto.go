package handler

import (
	"time"

	"github.com/google/uuid"
	appaccounting "github.com/obraerp/backend/internal/application/accounting"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// AccountRequest is the body of POST /accounts. Type accepts the canonical
// token or a Spanish label such as "Activo".
type AccountRequest struct {
	Code        string     `json:"code" binding:"required,max=30"`
	Name        string     `json:"name" binding:"required,max=200"`
	Type        string     `json:"type" binding:"required"`
	ParentID    *uuid.UUID `json:"parentId"`
	ParentCode  string     `json:"parentCode" binding:"max=30"`
	Description string     `json:"description"`
}

// UpdateAccountRequest changes the given fields only
type UpdateAccountRequest struct {
	Code        *string    `json:"code" binding:"omitempty,max=30"`
	Name        *string    `json:"name" binding:"omitempty,max=200"`
	Type        *string    `json:"type"`
	ParentID    *uuid.UUID `json:"parentId"`
	ClearParent bool       `json:"clearParent"`
	Description *string    `json:"description"`
	IsActive    *bool      `json:"isActive"`
}

// AccountResponse is the public view of an account
type AccountResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organizationId"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	ParentID       *uuid.UUID `json:"parentId"`
	Description    string     `json:"description"`
	IsStandard     bool       `json:"isStandard"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toAccountResponse(a *accounting.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		OrganizationID: a.OrganizationID,
		Code:           a.Code,
		Name:           a.Name,
		Type:           string(a.Type),
		ParentID:       a.ParentID,
		Description:    a.Description,
		IsStandard:     a.IsStandard,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountNodeResponse is one node of the chart tree
type AccountNodeResponse struct {
	AccountResponse
	Children []AccountNodeResponse `json:"children"`
}

func toAccountTree(nodes []*appaccounting.AccountNode) []AccountNodeResponse {
	out := make([]AccountNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, AccountNodeResponse{
			AccountResponse: toAccountResponse(&n.Account),
			Children:        toAccountTree(n.Children),
		})
	}
	return out
}

// JournalEntryRequest is the body of POST /journal-entries. Date is
// YYYY-MM-DD.
type JournalEntryRequest struct {
	Date            string          `json:"date" binding:"required"`
	Description     string          `json:"description" binding:"required,max=500"`
	Reference       string          `json:"reference" binding:"max=100"`
	DebitAccountID  uuid.UUID       `json:"debitAccountId" binding:"required"`
	CreditAccountID uuid.UUID       `json:"creditAccountId" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency" binding:"omitempty,len=3"`
	ProjectID       *uuid.UUID      `json:"projectId"`
}

// JournalEntryResponse is the public view of a journal entry
type JournalEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrganizationID  uuid.UUID       `json:"organizationId"`
	Date            string          `json:"date"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	DebitAccountID  uuid.UUID       `json:"debitAccountId"`
	CreditAccountID uuid.UUID       `json:"creditAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	ProjectID       *uuid.UUID      `json:"projectId"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func toJournalEntryResponse(e *accounting.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:              e.ID,
		OrganizationID:  e.OrganizationID,
		Date:            e.Date.Format(dateLayout),
		Description:     e.Description,
		Reference:       e.Reference,
		DebitAccountID:  e.DebitAccountID,
		CreditAccountID: e.CreditAccountID,
		Amount:          e.Amount,
		Currency:        e.Currency,
		ProjectID:       e.ProjectID,
		CreatedAt:       e.CreatedAt,
	}
}

// ExchangeRateRequest is the body of POST /exchange-rates
type ExchangeRateRequest struct {
	FromCurrency string          `json:"fromCurrency" binding:"required,len=3"`
	ToCurrency   string          `json:"toCurrency" binding:"required,len=3"`
	Rate         decimal.Decimal `json:"rate"`
	Date         string          `json:"date" binding:"required"`
}

// ExchangeRateResponse is the public view of an exchange rate
type ExchangeRateResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrganizationID uuid.UUID       `json:"organizationId"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Date           string          `json:"date"`
}

func toExchangeRateResponse(r *accounting.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		FromCurrency:   r.FromCurrency,
		ToCurrency:     r.ToCurrency,
		Rate:           r.Rate,
		Date:           r.Date.Format(dateLayout),
	}
}

// ConversionResponse is the result of GET /exchange-rates/convert
type ConversionResponse struct {
	From      string                `json:"from"`
	To        string                `json:"to"`
	Amount    decimal.Decimal       `json:"amount"`
	Converted decimal.Decimal       `json:"converted"`
	Rate      *ExchangeRateResponse `json:"rate,omitempty"`
}

// AccountingStatusResponse is the body of GET /accounting/status
type AccountingStatusResponse struct {
	EnableAccounting bool                   `json:"enableAccounting"`
	HasStandardChart bool                   `json:"hasStandardChart"`
	Stats            *accounting.ChartStats `json:"stats"`
}

func mapPage[T any, R any](page shared.Paginated[T], fn func(*T) R) shared.Paginated[R] {
	out := shared.Paginated[R]{
		Items:      make([]R, 0, len(page.Items)),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	for i := range page.Items {
		out.Items = append(out.Items, fn(&page.Items[i]))
	}
	return out
}
