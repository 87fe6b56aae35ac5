package handler

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	importapp "github.com/obraerp/backend/internal/application/import"
	"github.com/obraerp/backend/internal/interfaces/http/dto"
)

const importFormField = "file"

// Importer imports spreadsheets into one organization
type Importer interface {
	ImportClients(ctx context.Context, orgID uuid.UUID, src io.Reader) (*importapp.Result, error)
	ImportAccounts(ctx context.Context, orgID uuid.UUID, src io.Reader) (*importapp.Result, error)
	ImportRubros(ctx context.Context, orgID uuid.UUID, src io.Reader) (*importapp.Result, error)
}

type importFunc func(ctx context.Context, orgID uuid.UUID, src io.Reader) (*importapp.Result, error)

// ImportHandler accepts .xlsx uploads in the multipart field "file"
type ImportHandler struct {
	BaseHandler
	importer    Importer
	maxFileSize int64
}

// NewImportHandler creates an ImportHandler rejecting files above maxFileSize
func NewImportHandler(importer Importer, maxFileSize int64) *ImportHandler {
	return &ImportHandler{importer: importer, maxFileSize: maxFileSize}
}

// Clients imports clients
func (h *ImportHandler) Clients(c *gin.Context) {
	h.run(c, h.importer.ImportClients)
}

// Accounts imports accounts. Parents are resolved by code.
func (h *ImportHandler) Accounts(c *gin.Context) {
	h.run(c, h.importer.ImportAccounts)
}

// Rubros imports rubros
func (h *ImportHandler) Rubros(c *gin.Context) {
	h.run(c, h.importer.ImportRubros)
}

func (h *ImportHandler) run(c *gin.Context, fn importFunc) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	header, err := c.FormFile(importFormField)
	if err != nil {
		h.BadRequest(c, "Multipart field \"file\" with an .xlsx spreadsheet is required")
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		h.BadRequest(c, "Only .xlsx files can be imported")
		return
	}
	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "File exceeds maximum allowed size")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	result, err := fn(c.Request.Context(), tc.OrganizationID, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
