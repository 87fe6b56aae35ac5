package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/obraerp/backend/internal/application/identity"
	"github.com/obraerp/backend/internal/domain/shared"
)

// OrganizationReader reads and updates the session organization
type OrganizationReader interface {
	Get(ctx context.Context, orgID uuid.UUID) (*appidentity.OrganizationResponse, error)
	Update(ctx context.Context, orgID uuid.UUID, req appidentity.UpdateOrganizationRequest) (*appidentity.OrganizationResponse, error)
}

// UserManager manages the users of one organization
type UserManager interface {
	Create(ctx context.Context, orgID uuid.UUID, req appidentity.CreateUserRequest) (*appidentity.UserResponse, error)
	List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[appidentity.UserResponse], error)
	Deactivate(ctx context.Context, orgID, actorID, userID uuid.UUID) (*appidentity.UserResponse, error)
}

// OrganizationHandler serves the session organization and its users
type OrganizationHandler struct {
	BaseHandler
	orgs  OrganizationReader
	users UserManager
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(orgs OrganizationReader, users UserManager) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs, users: users}
}

// Get returns the session organization
func (h *OrganizationHandler) Get(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	org, err := h.orgs.Get(c.Request.Context(), tc.OrganizationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, org)
}

// Update changes the organization name and tax id
func (h *OrganizationHandler) Update(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req appidentity.UpdateOrganizationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	org, err := h.orgs.Update(c.Request.Context(), tc.OrganizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, org)
}

// ListUsers lists the users of the organization
func (h *OrganizationHandler) ListUsers(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	page, err := h.users.List(c.Request.Context(), tc.OrganizationID, filterFromQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// CreateUser adds a user to the organization
func (h *OrganizationHandler) CreateUser(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req appidentity.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.users.Create(c.Request.Context(), tc.OrganizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// DeactivateUser disables a user and revokes their sessions
func (h *OrganizationHandler) DeactivateUser(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	userID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Deactivate(c.Request.Context(), tc.OrganizationID, tc.UserID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
