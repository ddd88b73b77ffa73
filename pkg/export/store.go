package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store is the destination for exported snapshots.
type Store interface {
	// Put writes the content under the given key.
	Put(ctx context.Context, key, contentType string, content io.Reader) error
}

// DirStore writes snapshots to a directory on the local filesystem.
type DirStore struct {
	dir string
}

// NewDirStore creates a DirStore rooted at dir. The directory is created
// on first Put if it does not exist.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Put implements Store.
func (s *DirStore) Put(_ context.Context, key, _ string, content io.Reader) error {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: create dir for %s: %w", key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return fmt.Errorf("export: write %s: %w", key, err)
	}
	return nil
}
