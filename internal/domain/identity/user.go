package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse permission level carried in the session
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleUser       Role = "USER"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// Password cost for bcrypt
const bcryptCost = 12

// User is a person who signs in to one organization
type User struct {
	shared.OrgEntity
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(200);not null"`
	PasswordHash string `gorm:"type:varchar(200);not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user with a hashed password
func NewUser(orgID uuid.UUID, email, name, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.Validation("INVALID_EMAIL", "invalid email address: %q", email)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validation("INVALID_NAME", "user name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.Validation("INVALID_ROLE", "unknown role: %q", role)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		OrgEntity:    shared.NewOrgEntity(orgID),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// VerifyPassword checks password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// Deactivate blocks future logins
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.Validation("INVALID_PASSWORD", "password must be at least 8 characters")
	}
	if len(password) > 72 {
		return "", shared.Validation("INVALID_PASSWORD", "password cannot exceed 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.Internal("failed to hash password", err)
	}
	return string(hash), nil
}
