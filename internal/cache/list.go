package cache

import (
	"bytes"
	"context"
	"encoding/json"
)

// ReadList decodes the list stored under key. A key that was never written
// reads as an empty list.
func ReadList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	data, ok, err := s.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &CacheIOError{Op: "decode", Key: key, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// WriteList stores items under key as an indented JSON array. A nil slice
// is written as "[]".
func WriteList[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return WriteJSON(ctx, s, key, items)
}

// Clear overwrites key with an empty list.
func Clear(ctx context.Context, s Store, key string) error {
	return s.Write(ctx, key, []byte("[]\n"))
}

// ReadJSON decodes the object stored under key into v. Returns false when
// the key was never written.
func ReadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, ok, err := s.Read(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &CacheIOError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

// WriteJSON stores v under key as indented JSON with a trailing newline.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &CacheIOError{Op: "encode", Key: key, Err: err}
	}
	return s.Write(ctx, key, append(data, '\n'))
}
