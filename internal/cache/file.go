package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one "<key>.json" file per key under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &CacheIOError{Op: "open", Err: err}
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read implements Store.
func (s *FileStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := validKey(key); err != nil {
		return nil, false, &CacheIOError{Op: "read", Key: key, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, false, &CacheIOError{Op: "read", Key: key, Err: err}
	}

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &CacheIOError{Op: "read", Key: key, Err: err}
	}
	return data, true, nil
}

// Write implements Store. The file is replaced atomically: data goes to a
// temporary file in the same directory which is then renamed over the
// target.
func (s *FileStore) Write(ctx context.Context, key string, data []byte) error {
	if err := validKey(key); err != nil {
		return &CacheIOError{Op: "write", Key: key, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &CacheIOError{Op: "write", Key: key, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return &CacheIOError{Op: "write", Key: key, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &CacheIOError{Op: "write", Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &CacheIOError{Op: "write", Key: key, Err: err}
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return &CacheIOError{Op: "write", Key: key, Err: fmt.Errorf("rename: %w", err)}
	}
	return nil
}

// Close implements Store. FileStore holds no open resources.
func (s *FileStore) Close() error {
	return nil
}
