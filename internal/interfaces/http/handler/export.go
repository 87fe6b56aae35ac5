package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	exportapp "github.com/obraerp/backend/internal/application/export"
	"github.com/obraerp/backend/internal/domain/shared"
)

// Exporter renders an entity of one organization as a file
type Exporter interface {
	Export(ctx context.Context, orgID uuid.UUID, entity exportapp.Entity, format exportapp.Format) (*exportapp.File, error)
}

// ExportHandler streams xlsx and pdf exports
type ExportHandler struct {
	BaseHandler
	exporter Exporter
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exporter Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// For returns the handler exporting entity. ?format= is xlsx (default) or pdf.
func (h *ExportHandler) For(entity exportapp.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := h.tenant(c)
		if !ok {
			return
		}
		format := exportapp.Format(strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", string(exportapp.FormatXLSX)))))
		if format != exportapp.FormatXLSX && format != exportapp.FormatPDF {
			h.HandleError(c, shared.Validation("EXPORT_FORMAT_UNSUPPORTED", "format must be xlsx or pdf"))
			return
		}

		file, err := h.exporter.Export(c.Request.Context(), tc.OrganizationID, entity, format)
		if err != nil {
			h.HandleError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strconv.Quote(file.Name)))
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, file.ContentType, file.Data)
	}
}
