package dto

import (
	"net/http"

	"github.com/obraerp/backend/internal/domain/shared"
)

// Envelope error codes. Domain errors keep their own code; these cover
// failures raised by the HTTP layer itself.
const (
	ErrCodeInternal        = "ERR_INTERNAL"
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeUnauthorized    = "ERR_UNAUTHORIZED"
	ErrCodeForbidden       = "ERR_FORBIDDEN"
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeConflict        = "ERR_CONFLICT"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// kindStatus maps each domain error kind to exactly one status code
var kindStatus = map[shared.ErrorKind]int{
	shared.KindNotFound:         http.StatusNotFound,
	shared.KindForbidden:        http.StatusForbidden,
	shared.KindValidationFailed: http.StatusBadRequest,
	shared.KindConflict:         http.StatusConflict,
	shared.KindInternal:         http.StatusInternalServerError,
	shared.KindUnauthorized:     http.StatusUnauthorized,
}

// StatusForKind returns the HTTP status of a domain error kind. Unknown
// kinds are treated as internal errors.
func StatusForKind(kind shared.ErrorKind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
