package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	// gorm pings on open
	mock.ExpectPing()
	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestOrgScope(t *testing.T) {
	t.Run("adds organization filter", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		orgID := uuid.New()
		type Widget struct {
			ID             uint
			OrganizationID uuid.UUID
		}

		mock.ExpectQuery(`SELECT \* FROM "widgets" WHERE organization_id = \$1`).
			WithArgs(orgID.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id"}).AddRow(1, orgID.String()))

		var rows []Widget
		require.NoError(t, db.DB.Scopes(OrgScope(orgID)).Find(&rows).Error)
		assert.Len(t, rows, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil organization panics", func(t *testing.T) {
		assert.Panics(t, func() { OrgScope(uuid.Nil) })
	})
}

func TestDatabase_PingAndClose(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectPing()
	require.NoError(t, db.Ping())

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)

	mock.ExpectClose()
	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
