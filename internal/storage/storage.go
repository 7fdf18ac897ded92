package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned when the key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found in storage")

// ObjectStorage reads reference data kept in object storage.
type ObjectStorage interface {
	// GetObject opens the object for reading. The caller closes the reader.
	GetObject(ctx context.Context, objectKey string) (io.ReadCloser, error)
}
