package store

import (
	"context"
	"errors"
)

// ErrDocNotFound is returned by Get, Update and Delete when the
// partition holds no document under the given key.
var ErrDocNotFound = errors.New("document not found")

// Store is a partitioned key-value collection of JSON documents.
// A partition is the unit of ownership isolation: callers can only
// reach documents through the partition name they pass in.
type Store interface {
	// Put writes a document, creating or replacing it.
	Put(ctx context.Context, partition, key string, doc []byte) error

	// Get returns the document or ErrDocNotFound.
	Get(ctx context.Context, partition, key string) ([]byte, error)

	// ListAll returns every document in the partition, in no
	// particular order. An empty partition yields an empty slice.
	ListAll(ctx context.Context, partition string) ([][]byte, error)

	// Update replaces an existing document. It returns ErrDocNotFound
	// instead of creating one when the key is absent.
	Update(ctx context.Context, partition, key string, doc []byte) error

	// Delete removes the document or returns ErrDocNotFound.
	Delete(ctx context.Context, partition, key string) error
}
