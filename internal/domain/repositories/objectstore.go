package repositories

import (
	"context"
	"io"
)

// ObjectStore holds uploaded source files and export artifacts.
type ObjectStore interface {
	// Put stores an object and returns nothing; the caller owns key naming.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Get streams an object back. The caller must close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Remove deletes an object; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
