package importapp

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/obraerp/backend/internal/infrastructure/spreadsheet"
	"github.com/obraerp/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Result reports one import. Imported counts created records only.
type Result struct {
	Imported    int                    `json:"imported"`
	Errors      []spreadsheet.RowError `json:"errors"`
	TotalErrors int                    `json:"totalErrors"`
	Truncated   bool                   `json:"truncated,omitempty"`
}

// Metrics receives import outcomes. A nil Metrics is ignored.
type Metrics interface {
	RecordImport(ctx context.Context, entity string, imported, failed int)
}

// Service imports spreadsheets row by row. Every row is created on its
// own; a failed row is reported and the next one is attempted.
type Service struct {
	clients  ClientCreator
	accounts AccountCreator
	rubros   RubroCreator
	maxRows  int
	metrics  Metrics
	logger   *zap.Logger
}

// Option configures the Service
type Option func(*Service)

// WithMaxRows bounds the record rows of one file
func WithMaxRows(n int) Option {
	return func(s *Service) { s.maxRows = n }
}

// WithMetrics records import outcomes
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(clients ClientCreator, accounts AccountCreator, rubros RubroCreator, opts ...Option) *Service {
	s := &Service{
		clients:  clients,
		accounts: accounts,
		rubros:   rubros,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type rowFunc func(ctx context.Context, orgID uuid.UUID, row *spreadsheet.Row) error

func (s *Service) run(
	ctx context.Context,
	entity string,
	orgID uuid.UUID,
	src io.Reader,
	schema spreadsheet.Schema,
	rules []spreadsheet.FieldRule,
	create rowFunc,
) (_ *Result, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "import", entity, attribute.String("organization_id", orgID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	reader, err := spreadsheet.Open(src, schema, spreadsheet.WithMaxRows(s.maxRows))
	if err != nil {
		return nil, openError(err)
	}

	validator := spreadsheet.NewFieldValidator(rules)
	errs := spreadsheet.NewErrorCollection(0)
	result := &Result{}

	for {
		row, ok := reader.Next()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if row.IsEmpty() {
			continue
		}
		if err := validator.Validate(row); err != nil {
			errs.Add(row.Number, err.Error())
			continue
		}
		if err := create(ctx, orgID, row); err != nil {
			if shared.KindOf(err) == shared.KindInternal {
				s.logger.Error("Import row failed",
					zap.String("entity", entity),
					zap.Int("row", row.Number),
					zap.Error(err))
			}
			errs.Add(row.Number, reason(err))
			continue
		}
		validator.Accept(row)
		result.Imported++
	}

	result.Errors = errs.Errors()
	result.TotalErrors = errs.TotalCount()
	result.Truncated = errs.IsTruncated()

	s.logger.Info("Import finished",
		zap.String("entity", entity),
		zap.String("organization_id", orgID.String()),
		zap.Int("imported", result.Imported),
		zap.Int("errors", result.TotalErrors))
	if s.metrics != nil {
		s.metrics.RecordImport(ctx, entity, result.Imported, result.TotalErrors)
	}
	return result, nil
}

func openError(err error) error {
	var missing *spreadsheet.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		return shared.Validation("IMPORT_MISSING_COLUMNS", "%s", missing.Error())
	case errors.Is(err, spreadsheet.ErrTooManyRows):
		return shared.Validation("IMPORT_TOO_MANY_ROWS", "%s", err.Error())
	case errors.Is(err, spreadsheet.ErrEmptyFile):
		return shared.Validation("IMPORT_EMPTY_FILE", "the spreadsheet is empty")
	default:
		return shared.Validation("IMPORT_INVALID_FILE", "the file is not a valid xlsx workbook")
	}
}

// reason hides internal details from the row report
func reason(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		if de.Kind == shared.KindInternal {
			return "could not be saved"
		}
		return de.Message
	}
	return "could not be saved"
}
