package persistence

import (
	"errors"

	"github.com/obraerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver errors to domain errors. A missing row becomes
// "<resource> not found" and a unique violation becomes a conflict.
func translateError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.Conflict("ALREADY_EXISTS", "%s already exists", resource).WithCause(err)
	default:
		return err
	}
}
