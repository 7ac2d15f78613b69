package cache

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Store is a key to blob map. Implementations must be safe for concurrent
// use; writes to one key are expected to come from a single owner.
type Store interface {
	// Read returns the stored bytes and true, or nil and false when the key
	// has never been written.
	Read(ctx context.Context, key string) ([]byte, bool, error)

	// Write replaces the value stored under key.
	Write(ctx context.Context, key string, data []byte) error

	// Close releases the backend.
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// sqliteFile is the database file name inside the cache directory.
const sqliteFile = "cache.db"

// Open returns the Store selected by backend, rooted at dir.
func Open(backend Backend, dir string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, sqliteFile))
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// Key derives the cache key of a snapshot from its kind and owning ids:
//
//	Key("courses")                          = "courses"
//	Key("courseWorks", "c1")                = "c1_courseWorks"
//	Key("courseWorkSubmissions", "c1", "w") = "c1_w_courseWorkSubmissions"
func Key(kind string, ids ...string) string {
	parts := make([]string, 0, len(ids)+1)
	parts = append(parts, ids...)
	parts = append(parts, kind)
	return strings.Join(parts, "_")
}

// validKey rejects keys that cannot be used as a file name.
func validKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("empty key")
	case strings.ContainsAny(key, `/\`), strings.Contains(key, ".."):
		return fmt.Errorf("key contains a path separator")
	}
	return nil
}
