package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/obraerp/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var errInvalidCredentials = shared.NewDomainError(shared.KindUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")

// AuthService handles login, token refresh and logout
type AuthService struct {
	users     identity.UserRepository
	orgs      identity.OrganizationRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	orgs identity.OrganizationRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:     users,
		orgs:      orgs,
		jwt:       jwtService,
		blacklist: blacklist,
		logger:    logger,
		now:       time.Now,
	}
}

// Login verifies the password and issues a token pair. Unknown emails and
// wrong passwords get the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			s.logger.Warn("Login for unknown email", zap.String("email", req.Email))
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}
	if err := s.ensureActive(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		OrganizationID: user.OrganizationID,
		UserID:         user.ID,
		Email:          user.Email,
		Role:           string(user.Role),
	})
	if err != nil {
		return nil, shared.Internal("failed to generate authentication tokens", err)
	}

	user.RecordLogin(s.now())
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("organization_id", user.OrganizationID.String()))

	resp := toSessionResponse(pair)
	u := ToUserResponse(user)
	resp.User = &u
	return resp, nil
}

// Refresh exchanges a refresh token for a new pair. The role is reloaded
// from the user record so a demotion takes effect on the next refresh.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*SessionResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	orgID, err := claims.GetOrganizationUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}
	user, err := s.users.FindByIDForOrg(ctx, orgID, userID)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return nil, tokenError(auth.ErrInvalidClaims)
		}
		return nil, err
	}
	if err := s.ensureActive(ctx, user); err != nil {
		return nil, err
	}

	pair, _, err := s.jwt.Refresh(req.RefreshToken, string(user.Role))
	if err != nil {
		return nil, tokenError(err)
	}
	// The old refresh token must not be usable twice.
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
	}
	return toSessionResponse(pair), nil
}

// Logout revokes the access token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return shared.Internal("failed to revoke session", err)
	}
	s.logger.Info("User logged out",
		zap.String("user_id", claims.UserID),
		zap.String("organization_id", claims.OrganizationID))
	return nil
}

// Me returns the signed in user
func (s *AuthService) Me(ctx context.Context, orgID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByIDForOrg(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Authenticate validates an access token and rejects revoked sessions.
// The session middleware calls it on every request.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return shared.Internal("failed to check session", err)
	}
	if !revoked {
		revoked, err = s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			return shared.Internal("failed to check session", err)
		}
	}
	if revoked {
		return tokenError(auth.ErrTokenBlacklisted)
	}
	return nil
}

func (s *AuthService) ensureActive(ctx context.Context, user *identity.User) error {
	if !user.IsActive {
		return shared.NewDomainError(shared.KindUnauthorized, "ACCOUNT_INACTIVE", "Account has been deactivated")
	}
	org, err := s.orgs.FindByID(ctx, user.OrganizationID)
	if err != nil {
		return err
	}
	if !org.IsActive {
		return shared.NewDomainError(shared.KindUnauthorized, "ORGANIZATION_INACTIVE", "Organization has been deactivated")
	}
	return nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError(shared.KindUnauthorized, "TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError(shared.KindUnauthorized, "TOKEN_REVOKED", "Session has been closed")
	default:
		return shared.NewDomainError(shared.KindUnauthorized, "TOKEN_INVALID", "Invalid token")
	}
}

func toSessionResponse(pair *auth.TokenPair) *SessionResponse {
	return &SessionResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}
