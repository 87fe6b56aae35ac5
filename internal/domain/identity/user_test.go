package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	orgID := uuid.New()

	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser(orgID, "  Ana@Obra.com ", "Ana", "Password123", RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, orgID, user.OrganizationID)
		assert.Equal(t, "ana@obra.com", user.Email)
		assert.NotEqual(t, "Password123", user.PasswordHash)
		assert.True(t, user.VerifyPassword("Password123"))
		assert.False(t, user.VerifyPassword("wrong-password"))
		assert.True(t, user.IsActive)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser(orgID, "not-an-email", "Ana", "Password123", RoleUser)

		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidationFailed))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(orgID, "ana@obra.com", "Ana", "short", RoleUser)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser(orgID, "ana@obra.com", "Ana", "Password123", Role("OWNER"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown role")
	})
}

func TestOrganization(t *testing.T) {
	t.Run("new organization has accounting disabled", func(t *testing.T) {
		org, err := NewOrganization("Constructora Sur", "usd")

		require.NoError(t, err)
		assert.Equal(t, "USD", org.Currency)
		assert.False(t, org.EnableAccounting)
		assert.ErrorIs(t, org.RequireAccounting(), shared.ErrFeatureDisabled)
	})

	t.Run("defaults currency", func(t *testing.T) {
		org, err := NewOrganization("Constructora Sur", "")

		require.NoError(t, err)
		assert.Equal(t, "ARS", org.Currency)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewOrganization("   ", "ARS")

		assert.Error(t, err)
	})

	t.Run("accounting enabled passes the guard", func(t *testing.T) {
		org, _ := NewOrganization("Constructora Sur", "ARS")
		org.EnableAccounting = true

		assert.NoError(t, org.RequireAccounting())
	})
}
