// Package storage archives generated files in S3-compatible object storage.
package storage

import (
	"context"
	"path"

	"github.com/google/uuid"
)

// Archive stores generated files
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// ExportKey returns the object key of an export file: <orgId>/exports/<file>
func ExportKey(orgID uuid.UUID, filename string) string {
	return path.Join(orgID.String(), "exports", path.Base(filename))
}
