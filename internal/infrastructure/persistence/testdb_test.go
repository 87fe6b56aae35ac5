package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/accounting"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with every table migrated.
// One connection keeps the in-memory database alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&identity.Organization{},
		&identity.User{},
		&accounting.Account{},
		&accounting.JournalEntry{},
		&accounting.ExchangeRate{},
		&construction.Client{},
		&construction.Project{},
		&construction.BudgetItem{},
		&construction.Employee{},
		&construction.Provider{},
		&construction.Invoice{},
		&construction.Inspection{},
		&construction.Rubro{},
	))
	return db
}

// createOrg persists an organization for tests
func createOrg(t *testing.T, db *gorm.DB, name string) *identity.Organization {
	t.Helper()
	org, err := identity.NewOrganization(name, "ARS")
	require.NoError(t, err)
	require.NoError(t, NewGormOrganizationRepository(db).Create(context.Background(), org))
	return org
}

func createClient(t *testing.T, db *gorm.DB, orgID uuid.UUID, name string) *construction.Client {
	t.Helper()
	c, err := construction.NewClient(orgID, construction.ClientDetails{Name: name, TaxID: "30-" + name})
	require.NoError(t, err)
	require.NoError(t, NewGormClientRepository(db).Create(context.Background(), c))
	return c
}
