// Package spreadsheet reads and writes xlsx workbooks with excelize.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/obraerp/backend/internal/domain/localization"
	"github.com/xuri/excelize/v2"
)

// Column declares one logical column and the header labels that name it.
// Labels are compared after localization.Normalize, so "Razón social",
// "razon social" and "RAZON_SOCIAL" are the same header.
type Column struct {
	Key      string
	Aliases  []string
	Required bool
}

// Schema is the ordered column list of an import
type Schema []Column

// Reader iterates the first sheet of a workbook
type Reader struct {
	schema  Schema
	index   map[string]int
	rows    [][]string
	next    int
	maxRows int
}

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithMaxRows bounds the number of record rows. Zero means no limit.
func WithMaxRows(n int) ReaderOption {
	return func(r *Reader) { r.maxRows = n }
}

// Open reads the whole first sheet and matches its header row against
// schema. Unknown headers are ignored.
func Open(src io.Reader, schema Schema, opts ...ReaderOption) (*Reader, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	r := &Reader{schema: schema, rows: rows, next: 1}
	for _, opt := range opts {
		opt(r)
	}
	if r.maxRows > 0 && len(rows)-1 > r.maxRows {
		return nil, fmt.Errorf("%w (%d)", ErrTooManyRows, r.maxRows)
	}

	r.index = matchHeaders(rows[0], schema)
	var missing []string
	for _, col := range schema {
		if _, ok := r.index[col.Key]; col.Required && !ok {
			missing = append(missing, col.Key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return r, nil
}

func matchHeaders(header []string, schema Schema) map[string]int {
	byLabel := make(map[string]string)
	for _, col := range schema {
		byLabel[localization.Normalize(col.Key)] = col.Key
		for _, alias := range col.Aliases {
			byLabel[localization.Normalize(alias)] = col.Key
		}
	}
	index := make(map[string]int)
	for i, label := range header {
		key, ok := byLabel[localization.Normalize(label)]
		if !ok {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	return index
}

// HasColumn reports whether the header row named key
func (r *Reader) HasColumn(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Next returns the next record row, or false at the end of the sheet
func (r *Reader) Next() (*Row, bool) {
	if r.next >= len(r.rows) {
		return nil, false
	}
	cells := r.rows[r.next]
	r.next++

	values := make(map[string]string, len(r.index))
	for key, i := range r.index {
		if i < len(cells) {
			values[key] = strings.TrimSpace(cells[i])
		}
	}
	return &Row{Number: r.next, values: values}, true
}

// Len returns the number of record rows, blank ones included
func (r *Reader) Len() int {
	return len(r.rows) - 1
}

// Row is one record row keyed by schema column
type Row struct {
	Number int
	values map[string]string
}

// Get returns the trimmed cell for key, or "" when absent
func (r *Row) Get(key string) string {
	return r.values[key]
}

// IsEmpty reports whether every cell is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.values {
		if v != "" {
			return false
		}
	}
	return true
}
