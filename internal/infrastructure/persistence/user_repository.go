package persistence

import (
	"context"
	"strings"

	"github.com/obraerp/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	*GormOrgRepository[identity.User]
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{newGormOrgRepository[identity.User](db, orgTableOptions{
		resource:      "user",
		searchColumns: []string{"email", "name"},
		sortFields:    UserSortFields,
		defaultOrder:  "email",
		filter:        equalityFilter("role", "is_active"),
	})}
}

// FindByEmail finds a user across all organizations
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).Where("email = ?", toLowerTrim(email)).First(&user).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return &user, nil
}

// ExistsByEmail reports whether an email is registered in any organization
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.User{}).
		Where("email = ?", toLowerTrim(email)).
		Count(&count).Error
	return count > 0, err
}

func toLowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
