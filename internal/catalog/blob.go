package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrSourceNotFound marks a catalog source that does not exist
var ErrSourceNotFound = errors.New("catalog source not found")

// BlobReader fetches a raw catalog document by key
type BlobReader interface {
	ReadBlob(ctx context.Context, key string) ([]byte, error)
}

// FileBlobs reads documents from the local filesystem.
// Relative keys are resolved against Root.
type FileBlobs struct {
	Root string
}

// ReadBlob reads the file named by key
func (f FileBlobs) ReadBlob(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := key
	if !filepath.IsAbs(path) && f.Root != "" {
		path = filepath.Join(f.Root, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
