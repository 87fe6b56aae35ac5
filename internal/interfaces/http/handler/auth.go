package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/obraerp/backend/internal/application/identity"
	"github.com/obraerp/backend/internal/infrastructure/auth"
)

// SessionService is the part of the auth service the handler needs
type SessionService interface {
	Login(ctx context.Context, req appidentity.LoginRequest) (*appidentity.SessionResponse, error)
	Refresh(ctx context.Context, req appidentity.RefreshRequest) (*appidentity.SessionResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, orgID, userID uuid.UUID) (*appidentity.UserResponse, error)
}

// AuthHandler handles login, token refresh and logout
type AuthHandler struct {
	BaseHandler
	sessions SessionService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login exchanges credentials for an access and refresh token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// Refresh rotates a refresh token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshRequest
	if !h.bindJSON(c, &req) {
		return
	}

	session, err := h.sessions.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// Logout revokes the access token of the session
func (h *AuthHandler) Logout(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	if err := h.sessions.Logout(c.Request.Context(), tc.Claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Logged out"})
}

// Me returns the session user
func (h *AuthHandler) Me(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	user, err := h.sessions.Me(c.Request.Context(), tc.OrganizationID, tc.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
