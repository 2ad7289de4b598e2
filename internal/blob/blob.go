package blob

import (
	"context"
	"errors"
)

var (
	// ErrRemoteUnavailable wraps transport or protocol failures talking to
	// the remote store. Callers may retry on the next cycle.
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrNoObjects is returned by ResolveLatest when the prefix holds nothing.
	ErrNoObjects = errors.New("no objects under prefix")
)

// ObjectInfo describes a remote object.
type ObjectInfo struct {
	Key          string
	ETag         string
	Size         int64
	LastModified string
}

// Store is the remote object store consumed by the mirror engine. Byte
// ranges are 0-indexed and inclusive on both ends.
type Store interface {
	// Size returns the current byte length of the object at key.
	Size(ctx context.Context, key string) (int64, error)

	// ReadRange returns exactly the bytes [start, end] of the object at key.
	// Implementations surface short reads to the caller rather than failing.
	ReadRange(ctx context.Context, key string, start, end int64) ([]byte, error)

	// ResolveLatest returns the key of the most recently modified object
	// under prefix.
	ResolveLatest(ctx context.Context, prefix string) (string, error)
}
