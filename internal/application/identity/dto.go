package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/identity"
)

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the body of POST /auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SessionResponse is returned by login and refresh
type SessionResponse struct {
	AccessToken           string        `json:"accessToken"`
	RefreshToken          string        `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time     `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time     `json:"refreshTokenExpiresAt"`
	TokenType             string        `json:"tokenType"`
	User                  *UserResponse `json:"user,omitempty"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organizationId"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"isActive"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           string(u.Role),
		IsActive:       u.IsActive,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
	}
}

// CreateUserRequest is used by organization admins to add users
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=200"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN MANAGER USER"`
}

// UpdateOrganizationRequest is the body of PUT /organization
type UpdateOrganizationRequest struct {
	Name  string  `json:"name" binding:"required,max=200"`
	TaxID *string `json:"taxId" binding:"omitempty,max=50"`
}

// OrganizationResponse is the public view of an organization
type OrganizationResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	TaxID            string    `json:"taxId"`
	Currency         string    `json:"currency"`
	EnableAccounting bool      `json:"enableAccounting"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

func ToOrganizationResponse(o *identity.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:               o.ID,
		Name:             o.Name,
		TaxID:            o.TaxID,
		Currency:         o.Currency,
		EnableAccounting: o.EnableAccounting,
		IsActive:         o.IsActive,
		CreatedAt:        o.CreatedAt,
	}
}

// OrganizationSummaryResponse adds chart stats for the system API
type OrganizationSummaryResponse struct {
	OrganizationResponse
	Chart *accounting.ChartStats `json:"chart"`
}

// CreateOrganizationRequest provisions a tenant and its first admin
type CreateOrganizationRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	TaxID         string `json:"taxId" binding:"omitempty,max=50"`
	Currency      string `json:"currency" binding:"omitempty,len=3"`
	AdminEmail    string `json:"adminEmail" binding:"required,email"`
	AdminName     string `json:"adminName" binding:"required,max=200"`
	AdminPassword string `json:"adminPassword" binding:"required,min=8,max=72"`
}

// CreateOrganizationResponse returns the new tenant and its admin
type CreateOrganizationResponse struct {
	Organization OrganizationResponse `json:"organization"`
	Admin        UserResponse         `json:"admin"`
}
