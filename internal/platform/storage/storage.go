package storage

import (
	"context"
	"io"
)

// BlobStore is the storage collaborator used for project images and resumes.
// Delete is best-effort: callers decide whether a failure is fatal.
type BlobStore interface {
	Upload(ctx context.Context, r io.Reader, contentType, suggestedName string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}
