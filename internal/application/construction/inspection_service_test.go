package construction

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/construction"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInspectionService_Create(t *testing.T) {
	ctx := context.Background()
	orgID, projectID := uuid.New(), uuid.New()

	newService := func() (*InspectionService, *MockInspectionRepository, *MockProjectRepository) {
		inspections, projects := new(MockInspectionRepository), new(MockProjectRepository)
		return NewInspectionService(inspections, projects), inspections, projects
	}
	base := InspectionRequest{
		ProjectID:     projectID,
		Title:         "Revisión de encofrado",
		Type:          "Calidad",
		ScheduledDate: time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC),
	}

	t.Run("labels are mapped and a blank priority means medium", func(t *testing.T) {
		svc, inspections, projects := newService()
		projects.On("ExistsForOrg", ctx, orgID, projectID).Return(true, nil)
		inspections.On("Create", ctx, mock.Anything).Return(nil)

		req := base
		req.Status = "En progreso"
		resp, err := svc.Create(ctx, orgID, req)
		require.NoError(t, err)
		assert.Equal(t, string(construction.InspectionTypeQuality), resp.Type)
		assert.Equal(t, string(construction.InspectionStatusInProgress), resp.Status)
		assert.Equal(t, string(construction.PriorityMedium), resp.Priority)
	})

	t.Run("unknown priority is rejected", func(t *testing.T) {
		svc, inspections, _ := newService()

		req := base
		req.Priority = "altísima"
		_, err := svc.Create(ctx, orgID, req)
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "UNRECOGNIZED_PRIORITY", de.Code)
		inspections.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing type is a validation error", func(t *testing.T) {
		svc, _, _ := newService()

		req := base
		req.Type = "  "
		_, err := svc.Create(ctx, orgID, req)
		assert.True(t, shared.IsKind(err, shared.KindValidationFailed))
	})

	t.Run("project must belong to the organization", func(t *testing.T) {
		svc, _, projects := newService()
		projects.On("ExistsForOrg", ctx, orgID, projectID).Return(false, nil)

		_, err := svc.Create(ctx, orgID, base)
		assert.True(t, shared.IsKind(err, shared.KindValidationFailed))
	})
}

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("short queries are rejected before hitting the database", func(t *testing.T) {
		repo := new(MockSearchRepository)
		_, err := NewSearchService(repo).Search(ctx, orgID, " á ")
		assert.True(t, shared.IsKind(err, shared.KindValidationFailed))
		repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("hits are converted", func(t *testing.T) {
		repo := new(MockSearchRepository)
		id := uuid.New()
		repo.On("Search", ctx, orgID, "torre", construction.MaxSearchResults).
			Return([]construction.SearchHit{{Type: construction.SearchTypeProject, ID: id, Title: "Torre", Subtitle: "T-1"}}, nil)

		hits, err := NewSearchService(repo).Search(ctx, orgID, " torre ")
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "project", hits[0].Type)
		assert.Equal(t, id, hits[0].ID)
	})
}

func TestClientService_Delete(t *testing.T) {
	ctx := context.Background()
	orgID, clientID := uuid.New(), uuid.New()

	clients, projects, invoices := new(MockClientRepository), new(MockProjectRepository), new(MockInvoiceRepository)
	svc := NewClientService(clients, projects, invoices)

	clients.On("FindByIDForOrg", ctx, orgID, clientID).Return(&construction.Client{}, nil)
	projects.On("CountByClient", ctx, orgID, clientID).Return(int64(2), nil)

	err := svc.Delete(ctx, orgID, clientID)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "CLIENT_HAS_PROJECTS", de.Code)
	clients.AssertNotCalled(t, "DeleteForOrg", mock.Anything, mock.Anything, mock.Anything)
}

func TestRubroService_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	rubros := new(MockRubroRepository)
	rubros.On("ExistsByCode", ctx, orgID, "MAT-01", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := NewRubroService(rubros).Create(ctx, orgID, RubroRequest{Code: "mat-01", Name: "Cemento", Type: "Materiales"})
	assert.True(t, shared.IsKind(err, shared.KindConflict))
}
