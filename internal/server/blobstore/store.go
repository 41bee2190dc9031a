// Package blobstore abstracts the object store holding template blobs.
//
// Store is the capability the template service needs: put, get and
// list-by-prefix over flat string keys. S3 talks to AWS S3 or any
// S3-compatible server (MinIO); Memory keeps everything in a map and backs
// tests and local runs.
package blobstore

import "context"

type Store interface {
	// Put writes data under key, replacing any existing object.
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the object stored under key. A missing key yields an
	// error wrapping common.ErrorNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns every key starting with prefix, in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}
