// internal/app/blob/blob.go
//
// Package blob abstracts where file contents live. Metadata stays in
// MongoDB; the bytes go through a Store. Paths are opaque keys chosen
// by the caller at upload time.
package blob

import (
	"context"
	"io"
)

// PutOptions carries optional metadata for a write.
type PutOptions struct {
	ContentType string
}

// Store is the blob backend. Releasing a blob that is already gone is
// not an error; purge retries depend on that.
type Store interface {
	Put(ctx context.Context, path string, r io.Reader, opts *PutOptions) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}
