package storage

import (
	"context"
	"io"
)

// Storage defines the interface for media file storage.
type Storage interface {
	// Write stores content from the reader under the given key.
	Write(ctx context.Context, key string, r io.Reader) error

	// Read retrieves content for the given key.
	// The caller is responsible for closing the returned ReadCloser.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content with the given key.
	Delete(ctx context.Context, key string) error

	// Exists checks if content with the given key exists.
	Exists(ctx context.Context, key string) (bool, error)
}
