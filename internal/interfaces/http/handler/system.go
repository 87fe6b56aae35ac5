package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	appidentity "github.com/obraerp/backend/internal/application/identity"
	"github.com/obraerp/backend/internal/domain/shared"
)

// TenantProvisioner lists and creates organizations across tenants
type TenantProvisioner interface {
	ListOrganizations(ctx context.Context, filter shared.Filter) (shared.Paginated[appidentity.OrganizationSummaryResponse], error)
	CreateOrganization(ctx context.Context, req appidentity.CreateOrganizationRequest) (*appidentity.CreateOrganizationResponse, error)
}

// SystemHandler serves the superadmin system API
type SystemHandler struct {
	BaseHandler
	tenants TenantProvisioner
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(tenants TenantProvisioner) *SystemHandler {
	return &SystemHandler{tenants: tenants}
}

// ListOrganizations lists every organization with its chart stats
func (h *SystemHandler) ListOrganizations(c *gin.Context) {
	page, err := h.tenants.ListOrganizations(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// CreateOrganization provisions an organization and its first admin
func (h *SystemHandler) CreateOrganization(c *gin.Context) {
	var req appidentity.CreateOrganizationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	created, err := h.tenants.CreateOrganization(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}
