package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
)

// CRUDService is an organization scoped collection with one request type
// for create and update
type CRUDService[Req any, Resp any] interface {
	Create(ctx context.Context, orgID uuid.UUID, req Req) (*Resp, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req Req) (*Resp, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	Get(ctx context.Context, orgID, id uuid.UUID) (*Resp, error)
	List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[Resp], error)
}

// ResourceHandler serves the five CRUD routes of one resource
type ResourceHandler[Req any, Resp any] struct {
	BaseHandler
	service CRUDService[Req, Resp]
}

// NewResourceHandler creates a ResourceHandler
func NewResourceHandler[Req any, Resp any](service CRUDService[Req, Resp]) *ResourceHandler[Req, Resp] {
	return &ResourceHandler[Req, Resp]{service: service}
}

// Register mounts the routes on rg
func (h *ResourceHandler[Req, Resp]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *ResourceHandler[Req, Resp]) Create(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req Req
	if !h.bindJSON(c, &req) {
		return
	}
	created, err := h.service.Create(c.Request.Context(), tc.OrganizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

func (h *ResourceHandler[Req, Resp]) Update(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req Req
	if !h.bindJSON(c, &req) {
		return
	}
	updated, err := h.service.Update(c.Request.Context(), tc.OrganizationID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

func (h *ResourceHandler[Req, Resp]) Delete(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), tc.OrganizationID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ResourceHandler[Req, Resp]) Get(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	found, err := h.service.Get(c.Request.Context(), tc.OrganizationID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, found)
}

func (h *ResourceHandler[Req, Resp]) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	page, err := h.service.List(c.Request.Context(), tc.OrganizationID, filterFromQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}
