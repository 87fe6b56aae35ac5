package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appconstruction "github.com/obraerp/backend/internal/application/construction"
)

// BudgetManager manages the budget lines of a project
type BudgetManager interface {
	Budget(ctx context.Context, orgID, projectID uuid.UUID) (*appconstruction.BudgetSummaryResponse, error)
	AddBudgetItem(ctx context.Context, orgID, projectID uuid.UUID, req appconstruction.BudgetItemRequest) (*appconstruction.BudgetItemResponse, error)
	UpdateBudgetItem(ctx context.Context, orgID, projectID, itemID uuid.UUID, req appconstruction.UpdateBudgetItemRequest) (*appconstruction.BudgetItemResponse, error)
	DeleteBudgetItem(ctx context.Context, orgID, projectID, itemID uuid.UUID) error
}

// BudgetHandler serves /projects/:id/budget
type BudgetHandler struct {
	BaseHandler
	budgets BudgetManager
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgets BudgetManager) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

// Register mounts the budget routes under a project group
func (h *BudgetHandler) Register(projects *gin.RouterGroup) {
	projects.GET("/:id/budget", h.Summary)
	projects.POST("/:id/budget/items", h.AddItem)
	projects.PUT("/:id/budget/items/:itemId", h.UpdateItem)
	projects.DELETE("/:id/budget/items/:itemId", h.DeleteItem)
}

// Summary returns every line with its progress and the project totals
func (h *BudgetHandler) Summary(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	projectID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	summary, err := h.budgets.Budget(c.Request.Context(), tc.OrganizationID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// AddItem adds a budget line
func (h *BudgetHandler) AddItem(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	projectID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appconstruction.BudgetItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.budgets.AddBudgetItem(c.Request.Context(), tc.OrganizationID, projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateItem changes a budget line
func (h *BudgetHandler) UpdateItem(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	projectID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.uuidParam(c, "itemId")
	if !ok {
		return
	}
	var req appconstruction.UpdateBudgetItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.budgets.UpdateBudgetItem(c.Request.Context(), tc.OrganizationID, projectID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteItem removes a budget line
func (h *BudgetHandler) DeleteItem(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	projectID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.uuidParam(c, "itemId")
	if !ok {
		return
	}
	if err := h.budgets.DeleteBudgetItem(c.Request.Context(), tc.OrganizationID, projectID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
