package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/obraerp/backend/internal/application/identity"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/obraerp/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) Login(ctx context.Context, req appidentity.LoginRequest) (*appidentity.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.SessionResponse), args.Error(1)
}

func (m *mockSessions) Refresh(ctx context.Context, req appidentity.RefreshRequest) (*appidentity.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.SessionResponse), args.Error(1)
}

func (m *mockSessions) Logout(ctx context.Context, claims *auth.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *mockSessions) Me(ctx context.Context, orgID, userID uuid.UUID) (*appidentity.UserResponse, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.UserResponse), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Create(ctx context.Context, orgID uuid.UUID, req appidentity.CreateUserRequest) (*appidentity.UserResponse, error) {
	args := m.Called(ctx, orgID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.UserResponse), args.Error(1)
}

func (m *mockUsers) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[appidentity.UserResponse], error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(shared.Paginated[appidentity.UserResponse]), args.Error(1)
}

func (m *mockUsers) Deactivate(ctx context.Context, orgID, actorID, userID uuid.UUID) (*appidentity.UserResponse, error) {
	args := m.Called(ctx, orgID, actorID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.UserResponse), args.Error(1)
}

func TestAuthHandler_Login(t *testing.T) {
	router := func(svc *mockSessions) *gin.Engine {
		r := gin.New()
		r.POST("/auth/login", NewAuthHandler(svc).Login)
		return r
	}

	t.Run("success", func(t *testing.T) {
		svc := new(mockSessions)
		svc.On("Login", mock.Anything, appidentity.LoginRequest{Email: "ana@obra.com", Password: "secret123"}).
			Return(&appidentity.SessionResponse{
				AccessToken:          "access",
				RefreshToken:         "refresh",
				AccessTokenExpiresAt: time.Now().Add(15 * time.Minute),
				TokenType:            "Bearer",
			}, nil)

		w := serve(router(svc), http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"ana@obra.com","password":"secret123"}`))

		require.Equal(t, http.StatusOK, w.Code)
		data := dataMap(t, decodeResponse(t, w))
		assert.Equal(t, "access", data["accessToken"])
		assert.Equal(t, "Bearer", data["tokenType"])
		svc.AssertExpectations(t)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := new(mockSessions)
		svc.On("Login", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError(shared.KindUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"))

		w := serve(router(svc), http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"ana@obra.com","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeResponse(t, w).Error.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := new(mockSessions)
		w := serve(router(svc), http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"ana","password":"x"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := new(mockSessions)
	svc.On("Refresh", mock.Anything, appidentity.RefreshRequest{RefreshToken: "r1"}).
		Return(&appidentity.SessionResponse{AccessToken: "a2", RefreshToken: "r2"}, nil)

	router := gin.New()
	router.POST("/auth/refresh", NewAuthHandler(svc).Refresh)

	w := serve(router, http.MethodPost, "/auth/refresh", strings.NewReader(`{"refreshToken":"r1"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r2", dataMap(t, decodeResponse(t, w))["refreshToken"])
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	tc := testTenant(identity.RoleManager)
	tc.Claims = &auth.Claims{OrganizationID: tc.OrganizationID.String(), UserID: tc.UserID.String()}

	svc := new(mockSessions)
	svc.On("Logout", mock.Anything, tc.Claims).Return(nil)
	svc.On("Me", mock.Anything, tc.OrganizationID, tc.UserID).
		Return(&appidentity.UserResponse{ID: tc.UserID, Email: "jefe@obra.com", Role: "MANAGER"}, nil)

	h := NewAuthHandler(svc)
	router := gin.New()
	router.Use(withTenant(tc))
	router.POST("/auth/logout", h.Logout)
	router.GET("/auth/me", h.Me)

	w := serve(router, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jefe@obra.com", dataMap(t, decodeResponse(t, w))["email"])
	svc.AssertExpectations(t)
}

func TestOrganizationHandler_Users(t *testing.T) {
	tc := testTenant(identity.RoleAdmin)
	users := new(mockUsers)
	h := NewOrganizationHandler(nil, users)

	router := gin.New()
	router.Use(withTenant(tc))
	router.GET("/users", h.ListUsers)
	router.POST("/users", h.CreateUser)
	router.POST("/users/:id/deactivate", h.DeactivateUser)

	t.Run("create", func(t *testing.T) {
		users.On("Create", mock.Anything, tc.OrganizationID, mock.MatchedBy(func(r appidentity.CreateUserRequest) bool {
			return r.Email == "obrero@obra.com" && r.Role == "USER"
		})).Return(&appidentity.UserResponse{ID: uuid.New(), Email: "obrero@obra.com", Role: "USER"}, nil).Once()

		w := serve(router, http.MethodPost, "/users",
			strings.NewReader(`{"email":"obrero@obra.com","name":"Juan","password":"password1","role":"USER"}`))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("superadmin role is rejected at binding", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/users",
			strings.NewReader(`{"email":"x@obra.com","name":"X","password":"password1","role":"SUPERADMIN"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		users.On("List", mock.Anything, tc.OrganizationID, mock.Anything).
			Return(shared.NewPaginated([]appidentity.UserResponse{{Email: "a@obra.com"}}, 1, 1, 20), nil).Once()

		w := serve(router, http.MethodGet, "/users", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), decodeResponse(t, w).Meta.Total)
	})

	t.Run("deactivate", func(t *testing.T) {
		target := uuid.New()
		users.On("Deactivate", mock.Anything, tc.OrganizationID, tc.UserID, target).
			Return(&appidentity.UserResponse{ID: target, IsActive: false}, nil).Once()

		w := serve(router, http.MethodPost, "/users/"+target.String()+"/deactivate", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deactivate with a bad id", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/users/not-a-uuid/deactivate", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	users.AssertExpectations(t)
}
