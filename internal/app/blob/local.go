// internal/app/blob/local.go
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs on the local filesystem under a base directory.
type Local struct {
	basePath  string
	urlPrefix string
}

// NewLocal creates the base directory if needed and returns a Local
// store. urlPrefix is prepended by URL, e.g. "/api/files".
func NewLocal(basePath, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating blob dir %s: %w", basePath, err)
	}
	return &Local{basePath: basePath, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// GetFullPath resolves a blob key to an absolute filesystem path,
// rejecting keys that escape the base directory.
func (l *Local) GetFullPath(path string) (string, error) {
	full := filepath.Join(l.basePath, filepath.FromSlash(path))
	base, err := filepath.Abs(l.basePath)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return "", err
	}
	if abs != base && !strings.HasPrefix(abs, base+string(filepath.Separator)) {
		return "", fmt.Errorf("blob path %q escapes storage root", path)
	}
	return abs, nil
}

func (l *Local) Put(ctx context.Context, path string, r io.Reader, opts *PutOptions) error {
	full, err := l.GetFullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	// Write to a temp file first so a partial upload never becomes
	// visible under the final key.
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), full)
}

func (l *Local) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := l.GetFullPath(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Delete removes the blob. A missing file counts as success so purge
// can be retried safely.
func (l *Local) Delete(ctx context.Context, path string) error {
	full, err := l.GetFullPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *Local) URL(path string) string {
	return l.urlPrefix + "/" + strings.TrimPrefix(path, "/")
}
