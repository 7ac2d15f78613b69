package cache

import (
	"errors"
	"fmt"
)

// ErrCodeCacheIO is the error code of every cache failure.
const ErrCodeCacheIO = "CACHE_IO"

// CacheIOError reports a failed cache read, write, or decode.
type CacheIOError struct {
	Op  string // "read", "write", "decode", "encode", "open"
	Key string
	Err error
}

func (e *CacheIOError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CacheIOError) Unwrap() error { return e.Err }

// Code returns ErrCodeCacheIO.
func (e *CacheIOError) Code() string { return ErrCodeCacheIO }

// IsCacheIOError reports whether err is or wraps a *CacheIOError.
func IsCacheIOError(err error) bool {
	var e *CacheIOError
	return errors.As(err, &e)
}
