// Package filestore defines the unified interface for the object-storage
// backends the file manager talks to.
//
// All providers (MinIO, in-memory, …) implement the Store interface.
// Callers depend only on this package — never on a specific provider package.
//
// Usage:
//
//	cfg := filestore.DefaultConfig("localhost:9000", "minioadmin", "minioadmin")
//	store, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer store.Close()
//
//	buckets, err := store.ListBuckets(ctx)
package filestore

import (
	"context"
	"io"
	"time"
)

// Store is the single interface all storage providers must implement.
// Implementations are safe for concurrent use by multiple goroutines.
type Store interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources (connections, goroutines, etc.).
	Close() error

	// ListBuckets returns all buckets accessible with the configured
	// credentials, in backend order.
	ListBuckets(ctx context.Context) ([]BucketInfo, error)

	// ListObjects returns the objects in bucket that match opts.
	ListObjects(ctx context.Context, bucket string, opts ListOptions) ([]ObjectInfo, error)

	// CreateBucket creates a new empty bucket. It fails with
	// errs.KindAlreadyExists when the name collides with an existing
	// bucket, and errs.KindBackend on any other rejection.
	CreateBucket(ctx context.Context, name string) error

	// DeleteBucket removes the bucket. Backends reject deletion of a
	// non-empty bucket; callers empty it first.
	DeleteBucket(ctx context.Context, name string) error

	// PutObject stores size bytes read from r under key inside bucket,
	// overwriting any existing object with that key.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error

	// GetObject opens a streaming handle to the object at key inside bucket.
	// The caller MUST call Object.Close() after reading. A missing object
	// fails with errs.KindNotFound.
	GetObject(ctx context.Context, bucket, key string) (Object, error)

	// StatObject returns metadata for the object at key inside bucket
	// without downloading its content.
	StatObject(ctx context.Context, bucket, key string) (*ObjectInfo, error)

	// RemoveObjects deletes the named objects from bucket in one batch.
	// Removal is best-effort: the first failure is returned, objects
	// already removed stay removed.
	RemoveObjects(ctx context.Context, bucket string, keys []string) error

	// PresignGetURL returns a time-limited URL that allows anyone to
	// download the object at key inside bucket without credentials.
	PresignGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
