// Package exportapp builds entity tables from organization-scoped queries and
// renders them as xlsx or pdf files.
package exportapp

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/obraerp/backend/internal/infrastructure/spreadsheet"
	"github.com/obraerp/backend/internal/infrastructure/storage"
	"github.com/obraerp/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Format is an output file format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Entity names an exportable collection. The value is also the file name prefix.
type Entity string

const (
	EntityProjects       Entity = "projects"
	EntityClients        Entity = "clients"
	EntityAccounts       Entity = "accounts"
	EntityJournalEntries Entity = "journal-entries"
	EntityInspections    Entity = "inspections"
)

var supportedFormats = map[Entity][]Format{
	EntityProjects:       {FormatXLSX, FormatPDF},
	EntityClients:        {FormatXLSX},
	EntityAccounts:       {FormatXLSX, FormatPDF},
	EntityJournalEntries: {FormatXLSX},
	EntityInspections:    {FormatXLSX},
}

// Table is a titled grid of already formatted cells
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// File is a rendered export
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// TableRenderer prints a table to PDF
type TableRenderer interface {
	RenderTable(ctx context.Context, title string, columns []string, rows [][]string) ([]byte, error)
}

// Metrics receives export outcomes. A nil Metrics is ignored.
type Metrics interface {
	RecordExport(ctx context.Context, entity, format string, rows, bytes int)
}

// Service renders exports and optionally archives them
type Service struct {
	sources Sources
	pdf     TableRenderer
	archive storage.Archive
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures the Service
type Option func(*Service)

// WithPDF enables pdf output
func WithPDF(r TableRenderer) Option {
	return func(s *Service) { s.pdf = r }
}

// WithArchive uploads every generated file
func WithArchive(a storage.Archive) Option {
	return func(s *Service) { s.archive = a }
}

// WithMetrics records export outcomes
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the clock used for file names
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(sources Sources, opts ...Option) *Service {
	s := &Service{
		sources: sources,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Supports reports whether the entity can be exported in the format
func Supports(entity Entity, format Format) bool {
	return slices.Contains(supportedFormats[entity], format)
}

// Export renders the organization's records of entity as one file
func (s *Service) Export(ctx context.Context, orgID uuid.UUID, entity Entity, format Format) (_ *File, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", string(entity),
		attribute.String("organization_id", orgID.String()),
		attribute.String("format", string(format)))
	defer func() { telemetry.EndSpan(span, err) }()

	if !Supports(entity, format) {
		return nil, shared.Validation("EXPORT_FORMAT_UNSUPPORTED", "%s cannot be exported as %s", entity, format)
	}
	if format == FormatPDF && s.pdf == nil {
		return nil, shared.Forbidden("PDF_EXPORT_DISABLED", "pdf export is disabled")
	}

	table, err := s.buildTable(ctx, orgID, entity)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatPDF:
		data, err = s.pdf.RenderTable(ctx, table.Title, table.Columns, table.Rows)
	default:
		data, err = spreadsheet.WriteTable(table.Title, table.Columns, table.Rows)
	}
	if err != nil {
		return nil, shared.Internal(fmt.Sprintf("failed to render %s export", format), err)
	}

	file := &File{
		Name:        fmt.Sprintf("%s-%s.%s", entity, s.now().UTC().Format("2006-01-02"), format),
		ContentType: format.ContentType(),
		Data:        data,
	}

	s.store(ctx, orgID, file)
	if s.metrics != nil {
		s.metrics.RecordExport(ctx, string(entity), string(format), len(table.Rows), len(data))
	}
	return file, nil
}

// store archives the file. Failures are logged and never fail the export.
func (s *Service) store(ctx context.Context, orgID uuid.UUID, file *File) {
	if s.archive == nil {
		return
	}
	key := storage.ExportKey(orgID, file.Name)
	if err := s.archive.Put(ctx, key, file.Data, file.ContentType); err != nil {
		s.logger.Warn("Failed to archive export",
			zap.String("organization_id", orgID.String()),
			zap.String("key", key),
			zap.Error(err))
	}
}

func (s *Service) buildTable(ctx context.Context, orgID uuid.UUID, entity Entity) (*Table, error) {
	switch entity {
	case EntityProjects:
		return s.projectsTable(ctx, orgID)
	case EntityClients:
		return s.clientsTable(ctx, orgID)
	case EntityAccounts:
		return s.accountsTable(ctx, orgID)
	case EntityJournalEntries:
		return s.journalTable(ctx, orgID)
	case EntityInspections:
		return s.inspectionsTable(ctx, orgID)
	}
	return nil, shared.Validation("EXPORT_FORMAT_UNSUPPORTED", "unknown export %q", entity)
}
