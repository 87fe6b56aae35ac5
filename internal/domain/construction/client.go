package construction

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
)

// Client is a customer who commissions projects
type Client struct {
	shared.OrgEntity
	Name    string `gorm:"type:varchar(200);not null"`
	TaxID   string `gorm:"type:varchar(50);index"`
	Email   string `gorm:"type:varchar(200)"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
	City    string `gorm:"type:varchar(100)"`
	Notes   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// ClientDetails holds the mutable client fields
type ClientDetails struct {
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
	City    string
	Notes   string
}

// NewClient creates a client
func NewClient(orgID uuid.UUID, d ClientDetails) (*Client, error) {
	c := &Client{OrgEntity: shared.NewOrgEntity(orgID)}
	if err := c.Update(d); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the client details
func (c *Client) Update(d ClientDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.Validation("INVALID_CLIENT_NAME", "client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.Validation("INVALID_CLIENT_NAME", "client name cannot exceed 200 characters")
	}
	email := strings.ToLower(strings.TrimSpace(d.Email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.Validation("INVALID_EMAIL", "invalid email address: %q", d.Email)
		}
	}
	c.Name = name
	c.TaxID = strings.TrimSpace(d.TaxID)
	c.Email = email
	c.Phone = strings.TrimSpace(d.Phone)
	c.Address = strings.TrimSpace(d.Address)
	c.City = strings.TrimSpace(d.City)
	c.Notes = strings.TrimSpace(d.Notes)
	c.Touch()
	return nil
}
