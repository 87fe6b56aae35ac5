package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/obraerp/backend/internal/infrastructure/auth"
	"github.com/obraerp/backend/internal/infrastructure/logger"
	"github.com/obraerp/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	authHeader         = "Authorization"
	bearerPrefix       = "Bearer "
	OrganizationHeader = "X-Organization-ID"
	orgIDParam         = "orgId"
)

// Authenticator validates an access token and rejects revoked sessions
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// TenantContext is the identity every tenant-scoped handler works with
type TenantContext struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Role           identity.Role
	// TokenID is the jti of the access token, used by logout
	TokenID string
	Claims  *auth.Claims
}

type tenantCtxKey struct{}

// WithTenantContext stores tc in ctx
func WithTenantContext(ctx context.Context, tc *TenantContext) context.Context {
	return context.WithValue(ctx, tenantCtxKey{}, tc)
}

// TenantFromContext returns the TenantContext stored by SessionAuth
func TenantFromContext(ctx context.Context) (*TenantContext, bool) {
	tc, ok := ctx.Value(tenantCtxKey{}).(*TenantContext)
	return tc, ok
}

// GetTenantContext returns the TenantContext of the request
func GetTenantContext(c *gin.Context) (*TenantContext, bool) {
	if v, ok := c.Get(TenantContextKey); ok {
		if tc, ok := v.(*TenantContext); ok {
			return tc, true
		}
	}
	return TenantFromContext(c.Request.Context())
}

// SessionAuth reads the bearer token, validates it and stores the session
// identity on the gin context and the request context. Any failure is 401.
func SessionAuth(authn Authenticator, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		header := c.GetHeader(authHeader)
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if header == "" || !ok || strings.TrimSpace(token) == "" {
			abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := authn.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) && de.Kind == shared.KindUnauthorized {
				log.Debug("Rejected session", zap.String("path", c.Request.URL.Path), zap.String("code", de.Code))
				abort(c, http.StatusUnauthorized, de.Code, de.Message)
				return
			}
			log.Error("Session check failed", zap.Error(err))
			abort(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
			return
		}

		tc, err := tenantFromClaims(claims)
		if err != nil {
			abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Invalid session")
			return
		}

		c.Set(TenantContextKey, tc)
		c.Set(OrganizationIDKey, tc.OrganizationID.String())
		c.Set(UserIDKey, tc.UserID.String())
		ctx := WithTenantContext(c.Request.Context(), tc)
		ctx = logger.WithTenant(ctx, tc.OrganizationID.String(), tc.UserID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func tenantFromClaims(claims *auth.Claims) (*TenantContext, error) {
	orgID, err := claims.GetOrganizationUUID()
	if err != nil {
		return nil, err
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, err
	}
	return &TenantContext{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           identity.Role(claims.Role),
		TokenID:        claims.ID,
		Claims:         claims,
	}, nil
}

// TenantGuard requires a session and rejects requests that name another
// organization through X-Organization-ID or an :orgId path parameter
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := GetTenantContext(c)
		if !ok {
			abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		for _, named := range []string{c.GetHeader(OrganizationHeader), c.Param(orgIDParam)} {
			if named == "" {
				continue
			}
			id, err := uuid.Parse(named)
			if err != nil || id != tc.OrganizationID {
				abort(c, http.StatusForbidden, shared.ErrTenantMismatch.Code, shared.ErrTenantMismatch.Message)
				return
			}
		}
		c.Next()
	}
}

// RequireRole allows only the listed roles
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := GetTenantContext(c)
		if !ok {
			abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !slices.Contains(roles, tc.Role) {
			abort(c, http.StatusForbidden, dto.ErrCodeForbidden, "Insufficient role for this operation")
			return
		}
		c.Next()
	}
}

// OrganizationLookup loads the session organization
type OrganizationLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error)
}

// RequireAccounting rejects requests of organizations that have not
// enabled the accounting feature
func RequireAccounting(orgs OrganizationLookup, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		tc, ok := GetTenantContext(c)
		if !ok {
			abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		org, err := orgs.FindByID(c.Request.Context(), tc.OrganizationID)
		if err != nil {
			if shared.IsKind(err, shared.KindNotFound) {
				abort(c, http.StatusForbidden, dto.ErrCodeForbidden, "Organization not available")
				return
			}
			log.Error("Failed to load organization", zap.String("organization_id", tc.OrganizationID.String()), zap.Error(err))
			abort(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
			return
		}
		if !org.EnableAccounting {
			abort(c, http.StatusForbidden, "ACCOUNTING_DISABLED", "Accounting is not enabled for this organization")
			return
		}
		c.Next()
	}
}
