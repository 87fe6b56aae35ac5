package spreadsheet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFile is returned when the upload is not a readable workbook
	ErrInvalidFile = errors.New("file is not a valid xlsx workbook")

	// ErrEmptyFile is returned when the first sheet has no rows
	ErrEmptyFile = errors.New("spreadsheet is empty")

	// ErrTooManyRows is returned when the sheet exceeds the configured row limit
	ErrTooManyRows = errors.New("spreadsheet exceeds the maximum number of rows")
)

// MissingColumnsError lists required columns absent from the header row
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %v", e.Columns)
}

// RowError is one failed row of an import. Row is the 1-based sheet row,
// so the header is row 1 and the first record row 2.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ErrorCollection gathers row errors up to a limit while counting all of them
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a collection that keeps at most maxErrors
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 500
	}
	return &ErrorCollection{maxErrors: maxErrors}
}

// Add records a failure for row
func (ec *ErrorCollection) Add(row int, reason string) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, RowError{Row: row, Reason: reason})
	}
}

// Errors returns the kept errors, never nil
func (ec *ErrorCollection) Errors() []RowError {
	if ec.errors == nil {
		return []RowError{}
	}
	return ec.errors
}

// TotalCount includes errors dropped past the limit
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// IsTruncated reports whether some errors were dropped
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > len(ec.errors)
}
