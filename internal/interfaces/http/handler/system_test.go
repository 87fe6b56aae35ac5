package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/obraerp/backend/internal/application/identity"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvisioner struct {
	mock.Mock
}

func (m *mockProvisioner) ListOrganizations(ctx context.Context, filter shared.Filter) (shared.Paginated[appidentity.OrganizationSummaryResponse], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[appidentity.OrganizationSummaryResponse]), args.Error(1)
}

func (m *mockProvisioner) CreateOrganization(ctx context.Context, req appidentity.CreateOrganizationRequest) (*appidentity.CreateOrganizationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.CreateOrganizationResponse), args.Error(1)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestSystemHandler_ListOrganizations(t *testing.T) {
	svc := new(mockProvisioner)
	h := NewSystemHandler(svc)

	orgs := []appidentity.OrganizationSummaryResponse{
		{OrganizationResponse: appidentity.OrganizationResponse{ID: uuid.New(), Name: "Constructora Sur"}},
	}
	svc.On("ListOrganizations", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 10
	})).Return(shared.NewPaginated(orgs, 11, 2, 10), nil)

	router := gin.New()
	router.Use(withTenant(testTenant(identity.RoleSuperAdmin)))
	router.GET("/system/organizations", h.ListOrganizations)

	w := serve(router, http.MethodGet, "/system/organizations?page=2&page_size=10", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(11), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)
	svc.AssertExpectations(t)
}

func TestSystemHandler_CreateOrganization(t *testing.T) {
	router := func(svc *mockProvisioner) *gin.Engine {
		r := gin.New()
		r.Use(withTenant(testTenant(identity.RoleSuperAdmin)))
		r.POST("/system/organizations", NewSystemHandler(svc).CreateOrganization)
		return r
	}

	t.Run("created", func(t *testing.T) {
		svc := new(mockProvisioner)
		orgID := uuid.New()
		svc.On("CreateOrganization", mock.Anything, mock.MatchedBy(func(r appidentity.CreateOrganizationRequest) bool {
			return r.Name == "Obras del Plata" && r.AdminEmail == "admin@plata.com"
		})).Return(&appidentity.CreateOrganizationResponse{
			Organization: appidentity.OrganizationResponse{ID: orgID, Name: "Obras del Plata"},
			Admin:        appidentity.UserResponse{Email: "admin@plata.com", Role: "ADMIN"},
		}, nil)

		body := `{"name":"Obras del Plata","adminEmail":"admin@plata.com","adminName":"Ana","adminPassword":"s3cretpass"}`
		w := serve(router(svc), http.MethodPost, "/system/organizations", strings.NewReader(body))

		require.Equal(t, http.StatusCreated, w.Code)
		org := dataMap(t, decodeResponse(t, w))["organization"].(map[string]any)
		assert.Equal(t, orgID.String(), org["id"])
		svc.AssertExpectations(t)
	})

	t.Run("short password never reaches the service", func(t *testing.T) {
		svc := new(mockProvisioner)
		body := `{"name":"X","adminEmail":"a@b.com","adminName":"A","adminPassword":"short"}`
		w := serve(router(svc), http.MethodPost, "/system/organizations", strings.NewReader(body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateOrganization", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		svc := new(mockProvisioner)
		svc.On("CreateOrganization", mock.Anything, mock.Anything).
			Return(nil, shared.Conflict("EMAIL_TAKEN", "email already registered"))

		body := `{"name":"X","adminEmail":"a@b.com","adminName":"A","adminPassword":"longenough"}`
		w := serve(router(svc), http.MethodPost, "/system/organizations", strings.NewReader(body))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "EMAIL_TAKEN", decodeResponse(t, w).Error.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", NewHealthHandler("1.2.3", nil).Health)

		w := serve(router, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("info", func(t *testing.T) {
		router := gin.New()
		router.GET("/info", NewHealthHandler("1.2.3", nil).Info)

		w := serve(router, http.MethodGet, "/info", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := dataMap(t, decodeResponse(t, w))
		assert.Equal(t, "1.2.3", data["version"])
		assert.NotEmpty(t, data["go_version"])
	})

	t.Run("ready with every dependency up", func(t *testing.T) {
		checks := map[string]Pinger{
			"database": pingFunc(func(context.Context) error { return nil }),
			"redis":    pingFunc(func(context.Context) error { return nil }),
		}
		router := gin.New()
		router.GET("/ready", NewHealthHandler("1.2.3", checks).Ready)

		w := serve(router, http.MethodGet, "/ready", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "up", dataMap(t, decodeResponse(t, w))["database"])
	})

	t.Run("ready with a dependency down", func(t *testing.T) {
		checks := map[string]Pinger{
			"database": pingFunc(func(context.Context) error { return nil }),
			"redis":    pingFunc(func(context.Context) error { return errors.New("connection refused") }),
		}
		router := gin.New()
		router.GET("/ready", NewHealthHandler("1.2.3", checks).Ready)

		w := serve(router, http.MethodGet, "/ready", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		data := dataMap(t, decodeResponse(t, w))
		assert.Equal(t, "down", data["redis"])
		assert.NotContains(t, w.Body.String(), "refused")
	})
}
