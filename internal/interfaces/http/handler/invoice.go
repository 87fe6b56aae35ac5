package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appconstruction "github.com/obraerp/backend/internal/application/construction"
	"github.com/obraerp/backend/internal/domain/shared"
)

// InvoiceManager records invoices and moves them through their states
type InvoiceManager interface {
	Create(ctx context.Context, orgID uuid.UUID, req appconstruction.InvoiceRequest) (*appconstruction.InvoiceResponse, error)
	MarkPaid(ctx context.Context, orgID, id uuid.UUID) (*appconstruction.InvoiceResponse, error)
	Cancel(ctx context.Context, orgID, id uuid.UUID) (*appconstruction.InvoiceResponse, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	Get(ctx context.Context, orgID, id uuid.UUID) (*appconstruction.InvoiceResponse, error)
	List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[appconstruction.InvoiceResponse], error)
}

// InvoiceHandler serves invoices. Invoices are never edited; they are paid,
// cancelled or deleted.
type InvoiceHandler struct {
	BaseHandler
	invoices InvoiceManager
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices InvoiceManager) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// Register mounts the invoice routes on rg
func (h *InvoiceHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/pay", h.MarkPaid)
	rg.POST("/:id/cancel", h.Cancel)
	rg.DELETE("/:id", h.Delete)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req appconstruction.InvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	invoice, err := h.invoices.Create(c.Request.Context(), tc.OrganizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.invoices.MarkPaid)
}

func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.invoices.Cancel)
}

func (h *InvoiceHandler) transition(c *gin.Context, apply func(ctx context.Context, orgID, id uuid.UUID) (*appconstruction.InvoiceResponse, error)) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	invoice, err := apply(c.Request.Context(), tc.OrganizationID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.invoices.Delete(c.Request.Context(), tc.OrganizationID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	invoice, err := h.invoices.Get(c.Request.Context(), tc.OrganizationID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	page, err := h.invoices.List(c.Request.Context(), tc.OrganizationID, filterFromQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}
