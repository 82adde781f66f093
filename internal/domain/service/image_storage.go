package service

import (
	"context"
	"io"
)

// StoredObject describes an uploaded object.
type StoredObject struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

// ImageStorage persists uploaded images behind a bucket abstraction.
type ImageStorage interface {
	// Put stores data under key with the given content type.
	Put(ctx context.Context, key, contentType string, data []byte) (*StoredObject, error)

	// Open returns a reader for key and its content type. Callers close the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)

	// URL returns the public URL of key.
	URL(key string) string
}
