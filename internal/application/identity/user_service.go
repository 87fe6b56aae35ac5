package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/obraerp/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService manages the users of one organization
type UserService struct {
	users      identity.UserRepository
	blacklist  auth.TokenBlacklist
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewUserService creates a new UserService. sessionTTL bounds how long a
// deactivation revocation is kept; it should be the refresh token lifetime.
func NewUserService(users identity.UserRepository, blacklist auth.TokenBlacklist, sessionTTL time.Duration, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, blacklist: blacklist, sessionTTL: sessionTTL, logger: logger}
}

// Create adds a user to the organization. Email is unique across all
// organizations because login resolves the tenant from it.
func (s *UserService) Create(ctx context.Context, orgID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	role := identity.Role(req.Role)
	if role == "" {
		role = identity.RoleUser
	}
	if role == identity.RoleSuperAdmin {
		return nil, shared.Forbidden("ROLE_NOT_ASSIGNABLE", "SUPERADMIN cannot be assigned by an organization")
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.Conflict("EMAIL_ALREADY_REGISTERED", "email %q is already registered", req.Email)
	}

	user, err := identity.NewUser(orgID, req.Email, req.Name, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("organization_id", orgID.String()),
		zap.String("role", string(role)))

	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns a page of the organization's users
func (s *UserService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (shared.Paginated[UserResponse], error) {
	filter = filter.Normalize()
	users, total, err := s.users.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return shared.Paginated[UserResponse]{}, err
	}
	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = ToUserResponse(&users[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Deactivate blocks a user and closes all of their open sessions
func (s *UserService) Deactivate(ctx context.Context, orgID, actorID, userID uuid.UUID) (*UserResponse, error) {
	if actorID == userID {
		return nil, shared.Validation("CANNOT_DEACTIVATE_SELF", "you cannot deactivate your own user")
	}
	user, err := s.users.FindByIDForOrg(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	user.Deactivate()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.sessionTTL); err != nil {
		s.logger.Error("Failed to revoke sessions of deactivated user",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
