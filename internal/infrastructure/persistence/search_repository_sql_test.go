package persistence

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockSearchRepository(t *testing.T, matcher sqlmock.QueryMatcher) (*GormSearchRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewGormSearchRepository(db), mock
}

func TestGormSearchRepository_PostgresQuery(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	term := "'; DROP TABLE clients; --"

	t.Run("input is bound, never inlined", func(t *testing.T) {
		matcher := sqlmock.QueryMatcherFunc(func(_, actual string) error {
			if strings.Contains(actual, "DROP TABLE") {
				return errors.New("search term was inlined into the query")
			}
			if !regexp.MustCompile(`organization_id = \$\d+`).MatchString(actual) {
				return errors.New("organization filter is not parameterized")
			}
			return nil
		})
		repo, mock := newMockSearchRepository(t, matcher)

		hitID := uuid.New()
		mock.ExpectQuery("search").WillReturnRows(
			sqlmock.NewRows([]string{"type", "id", "title", "subtitle"}).
				AddRow("client", hitID, "Torres SA", "30-1"))

		hits, err := repo.Search(ctx, orgID, term, 0)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, construction.SearchTypeClient, hits[0].Type)
		assert.Equal(t, hitID, hits[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver errors are returned", func(t *testing.T) {
		repo, mock := newMockSearchRepository(t, sqlmock.QueryMatcherRegexp)
		mock.ExpectQuery("UNION ALL").WillReturnError(errors.New("connection reset"))

		_, err := repo.Search(ctx, orgID, "torre", 5)
		assert.ErrorContains(t, err, "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "torre", escapeLike("to%rre"))
	assert.Equal(t, "ab", escapeLike("a_b"))
	assert.Equal(t, "obra", escapeLike("obra"))
}
