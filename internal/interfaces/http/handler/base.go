package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/obraerp/backend/internal/infrastructure/logger"
	"github.com/obraerp/backend/internal/interfaces/http/dto"
	"github.com/obraerp/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const genericErrorMessage = "An unexpected error occurred"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Page sends one page of results with pagination meta
func Page[T any](c *gin.Context, page shared.Paginated[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(items, page.Total, page.Page, page.PageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// HandleError converts any error into a response. Domain errors keep their
// code and map their kind to a status; binding errors become 400 with field
// details; everything else is logged and hidden behind a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		status := dto.StatusForKind(de.Kind)
		if status >= http.StatusInternalServerError {
			logger.L(c.Request.Context()).Error("Request failed",
				zap.String("code", de.Code), zap.Error(err))
			h.Error(c, status, dto.ErrCodeInternal, genericErrorMessage)
			return
		}
		h.Error(c, status, de.Code, de.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error",
		zap.String("path", c.FullPath()), zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, genericErrorMessage)
}

// BindingError answers a request whose body or query failed to bind
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	if details := middleware.ValidationDetails(err); details != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed",
			middleware.GetRequestID(c),
			details,
		))
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	h.BadRequest(c, "Malformed request body")
}

// bindJSON binds the body into req and answers the request on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.BindingError(c, err)
		return false
	}
	return true
}

// tenant returns the session identity. SessionAuth guarantees it on every
// tenant route, so a missing one is answered as unauthenticated.
func (h *BaseHandler) tenant(c *gin.Context) (*middleware.TenantContext, bool) {
	tc, ok := middleware.GetTenantContext(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return nil, false
	}
	return tc, true
}

// uuidParam parses a path parameter as a UUID
func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUIDQuery parses an optional query parameter as a UUID
func (h *BaseHandler) optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

// filterFromQuery reads page, page_size, order_by, order_dir and search
func filterFromQuery(c *gin.Context) shared.Filter {
	f := shared.Filter{
		OrderBy:  c.Query("order_by"),
		OrderDir: strings.ToLower(c.Query("order_dir")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	f.Page, _ = strconv.Atoi(c.Query("page"))
	f.PageSize, _ = strconv.Atoi(c.Query("page_size"))
	return f.Normalize()
}
