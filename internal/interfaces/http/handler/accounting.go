package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appaccounting "github.com/obraerp/backend/internal/application/accounting"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/localization"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Enablement turns the accounting feature on and off
type Enablement interface {
	Status(ctx context.Context, orgID uuid.UUID) (*appaccounting.Status, error)
	Enable(ctx context.Context, orgID uuid.UUID) (*appaccounting.EnableResult, error)
	SetupChart(ctx context.Context, orgID uuid.UUID) (appaccounting.SetupResult, error)
	Disable(ctx context.Context, orgID uuid.UUID) (*appaccounting.DisableResult, error)
}

// AccountingHandler serves the accounting feature switch
type AccountingHandler struct {
	BaseHandler
	enablement Enablement
}

// NewAccountingHandler creates a new AccountingHandler
func NewAccountingHandler(enablement Enablement) *AccountingHandler {
	return &AccountingHandler{enablement: enablement}
}

// Status reports the feature flag and the chart statistics
func (h *AccountingHandler) Status(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	status, err := h.enablement.Status(c.Request.Context(), tc.OrganizationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, AccountingStatusResponse{
		EnableAccounting: status.EnableAccounting,
		HasStandardChart: status.HasStandardChart,
		Stats:            status.Stats,
	})
}

// Enable turns accounting on and seeds the standard chart
func (h *AccountingHandler) Enable(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	result, err := h.enablement.Enable(c.Request.Context(), tc.OrganizationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	message := "Accounting enabled"
	if result.AlreadyEnabled {
		message = "Accounting already enabled"
	}
	h.Success(c, gin.H{
		"message":          message,
		"enableAccounting": true,
		"chartCreated":     result.ChartCreated,
		"standardAccounts": result.StandardAccounts,
	})
}

// SetupChart seeds the standard chart. A second call reports the existing chart.
func (h *AccountingHandler) SetupChart(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	result, err := h.enablement.SetupChart(c.Request.Context(), tc.OrganizationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	message := "Standard chart created"
	if !result.Created {
		message = "Standard chart already configured"
	}
	h.Success(c, gin.H{
		"message":      message,
		"created":      result.Created,
		"accountCount": len(result.Accounts),
	})
}

// Disable removes every accounting record and turns the feature off
func (h *AccountingHandler) Disable(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	result, err := h.enablement.Disable(c.Request.Context(), tc.OrganizationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"message":               "Accounting disabled",
		"enableAccounting":      false,
		"deletedJournalEntries": result.DeletedJournalEntries,
		"deletedExchangeRates":  result.DeletedExchangeRates,
		"deletedAccounts":       result.DeletedAccounts,
	})
}

// AccountManager manages the chart of accounts
type AccountManager interface {
	Create(ctx context.Context, orgID uuid.UUID, in appaccounting.CreateAccountInput) (*accounting.Account, error)
	Update(ctx context.Context, orgID, id uuid.UUID, in appaccounting.UpdateAccountInput) (*accounting.Account, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	Get(ctx context.Context, orgID, id uuid.UUID) (*accounting.Account, error)
	List(ctx context.Context, orgID uuid.UUID, filter accounting.AccountFilter) (shared.Paginated[accounting.Account], error)
	Tree(ctx context.Context, orgID uuid.UUID) ([]*appaccounting.AccountNode, error)
}

// AccountHandler serves the chart of accounts
type AccountHandler struct {
	BaseHandler
	accounts AccountManager
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts AccountManager) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Create adds an account
func (h *AccountHandler) Create(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req AccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	account, err := h.accounts.Create(c.Request.Context(), tc.OrganizationID, appaccounting.CreateAccountInput{
		Code:        req.Code,
		Name:        req.Name,
		Type:        req.Type,
		ParentID:    req.ParentID,
		ParentCode:  req.ParentCode,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toAccountResponse(account))
}

// Update changes an account
func (h *AccountHandler) Update(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	account, err := h.accounts.Update(c.Request.Context(), tc.OrganizationID, id, appaccounting.UpdateAccountInput{
		Code:        req.Code,
		Name:        req.Name,
		Type:        req.Type,
		ParentID:    req.ParentID,
		ClearParent: req.ClearParent,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toAccountResponse(account))
}

// Delete removes an account without children or journal entries
func (h *AccountHandler) Delete(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.accounts.Delete(c.Request.Context(), tc.OrganizationID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get returns one account
func (h *AccountHandler) Get(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	account, err := h.accounts.Get(c.Request.Context(), tc.OrganizationID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toAccountResponse(account))
}

// List pages through accounts. The type filter accepts labels.
func (h *AccountHandler) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	filter := accounting.AccountFilter{Filter: filterFromQuery(c)}

	if raw := c.Query("type"); raw != "" {
		token, err := localization.AccountType.MapRequired(raw)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		t := accounting.AccountType(token)
		filter.Type = &t
	}
	parentID, ok := h.optionalUUIDQuery(c, "parentId")
	if !ok {
		return
	}
	filter.ParentID = parentID
	if raw := c.Query("isStandard"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "Invalid isStandard")
			return
		}
		filter.IsStandard = &v
	}

	page, err := h.accounts.List(c.Request.Context(), tc.OrganizationID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, mapPage(page, toAccountResponse))
}

// Tree returns the chart as nested nodes
func (h *AccountHandler) Tree(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	nodes, err := h.accounts.Tree(c.Request.Context(), tc.OrganizationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toAccountTree(nodes))
}

// JournalManager records journal entries
type JournalManager interface {
	Create(ctx context.Context, orgID uuid.UUID, in appaccounting.CreateJournalEntryInput) (*accounting.JournalEntry, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (*accounting.JournalEntry, error)
	List(ctx context.Context, orgID uuid.UUID, filter accounting.JournalEntryFilter) (shared.Paginated[accounting.JournalEntry], error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// JournalHandler serves journal entries
type JournalHandler struct {
	BaseHandler
	entries JournalManager
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(entries JournalManager) *JournalHandler {
	return &JournalHandler{entries: entries}
}

// Create records a journal entry
func (h *JournalHandler) Create(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req JournalEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	entry, err := h.entries.Create(c.Request.Context(), tc.OrganizationID, appaccounting.CreateJournalEntryInput{
		Date:            date,
		Description:     req.Description,
		Reference:       req.Reference,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		ProjectID:       req.ProjectID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toJournalEntryResponse(entry))
}

// Get returns one journal entry
func (h *JournalHandler) Get(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	entry, err := h.entries.Get(c.Request.Context(), tc.OrganizationID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toJournalEntryResponse(entry))
}

// List pages through journal entries, optionally by account, project and
// date range
func (h *JournalHandler) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	filter := accounting.JournalEntryFilter{Filter: filterFromQuery(c)}
	if filter.AccountID, ok = h.optionalUUIDQuery(c, "accountId"); !ok {
		return
	}
	if filter.ProjectID, ok = h.optionalUUIDQuery(c, "projectId"); !ok {
		return
	}
	for _, bound := range []struct {
		name string
		dst  **time.Time
	}{{"from", &filter.From}, {"to", &filter.To}} {
		raw := c.Query(bound.name)
		if raw == "" {
			continue
		}
		d, err := parseDate(bound.name, raw)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		*bound.dst = &d
	}

	page, err := h.entries.List(c.Request.Context(), tc.OrganizationID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, mapPage(page, toJournalEntryResponse))
}

// Delete removes a journal entry
func (h *JournalHandler) Delete(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.entries.Delete(c.Request.Context(), tc.OrganizationID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RateManager records exchange rates and converts amounts
type RateManager interface {
	Create(ctx context.Context, orgID uuid.UUID, from, to string, rate decimal.Decimal, date time.Time) (*accounting.ExchangeRate, error)
	Get(ctx context.Context, orgID, id uuid.UUID) (*accounting.ExchangeRate, error)
	List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[accounting.ExchangeRate], error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	Convert(ctx context.Context, orgID uuid.UUID, from, to string, amount decimal.Decimal, date time.Time) (decimal.Decimal, *accounting.ExchangeRate, error)
}

// ExchangeRateHandler serves exchange rates
type ExchangeRateHandler struct {
	BaseHandler
	rates RateManager
	now   func() time.Time
}

// NewExchangeRateHandler creates a new ExchangeRateHandler
func NewExchangeRateHandler(rates RateManager) *ExchangeRateHandler {
	return &ExchangeRateHandler{rates: rates, now: time.Now}
}

// Create records a rate
func (h *ExchangeRateHandler) Create(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req ExchangeRateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	rate, err := h.rates.Create(c.Request.Context(), tc.OrganizationID, req.FromCurrency, req.ToCurrency, req.Rate, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toExchangeRateResponse(rate))
}

// Get returns one rate
func (h *ExchangeRateHandler) Get(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	rate, err := h.rates.Get(c.Request.Context(), tc.OrganizationID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toExchangeRateResponse(rate))
}

// List pages through rates
func (h *ExchangeRateHandler) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	page, err := h.rates.List(c.Request.Context(), tc.OrganizationID, filterFromQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, mapPage(page, toExchangeRateResponse))
}

// Delete removes a rate
func (h *ExchangeRateHandler) Delete(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.rates.Delete(c.Request.Context(), tc.OrganizationID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Convert converts ?amount= from ?from= to ?to= with the latest rate on or
// before ?date= (today when omitted)
func (h *ExchangeRateHandler) Convert(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(c.Query("amount")))
	if err != nil {
		h.HandleError(c, shared.Validation("INVALID_AMOUNT", "amount must be a decimal number"))
		return
	}
	date := h.now().UTC()
	if raw := c.Query("date"); raw != "" {
		if date, err = parseDate("date", raw); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	from, to := c.Query("from"), c.Query("to")

	converted, rate, err := h.rates.Convert(c.Request.Context(), tc.OrganizationID, from, to, amount, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	resp := ConversionResponse{
		From:      strings.ToUpper(from),
		To:        strings.ToUpper(to),
		Amount:    amount,
		Converted: converted,
	}
	if rate != nil {
		r := toExchangeRateResponse(rate)
		resp.Rate = &r
	}
	h.Success(c, resp)
}

func parseDate(field, raw string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, shared.Validation("INVALID_DATE", "%s must be a date formatted YYYY-MM-DD", field)
	}
	return d, nil
}
