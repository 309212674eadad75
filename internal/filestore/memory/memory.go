// Package memory provides an in-memory implementation of filestore.Store.
//
// It backs the test suites and the "memory" provider for local development
// where no MinIO server is available. Contents vanish on process exit.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/srishtisingh2026/S3-File-Manager/internal/errs"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore"
)

// Driver is an in-memory filestore.Store.
// All methods are safe for concurrent use.
type Driver struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
}

type bucket struct {
	createdAt time.Time
	objects   map[string]storedObject
}

type storedObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// New returns an empty in-memory store.
func New() *Driver {
	return &Driver{buckets: make(map[string]*bucket)}
}

// Ping always succeeds.
func (d *Driver) Ping(_ context.Context) error {
	return nil
}

// Close discards nothing; contents live until process exit.
func (d *Driver) Close() error {
	return nil
}

// ListBuckets returns all buckets sorted by name.
func (d *Driver) ListBuckets(_ context.Context) ([]filestore.BucketInfo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.buckets))
	for name := range d.buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]filestore.BucketInfo, len(names))
	for i, name := range names {
		infos[i] = filestore.BucketInfo{
			Name:      name,
			CreatedAt: d.buckets[name].createdAt,
		}
	}
	return infos, nil
}

// ListObjects returns the bucket's objects sorted by key.
func (d *Driver) ListObjects(_ context.Context, name string, opts filestore.ListOptions) ([]filestore.ObjectInfo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	b, ok := d.buckets[name]
	if !ok {
		return nil, errs.Newf(errs.KindNotFound, "bucket %q does not exist", name)
	}

	keys := make([]string, 0, len(b.objects))
	for key := range b.objects {
		if opts.Prefix != "" && !strings.HasPrefix(key, opts.Prefix) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if opts.Limit > 0 && len(keys) > opts.Limit {
		keys = keys[:opts.Limit]
	}

	infos := make([]filestore.ObjectInfo, len(keys))
	for i, key := range keys {
		obj := b.objects[key]
		infos[i] = filestore.ObjectInfo{
			Key:          key,
			Size:         int64(len(obj.data)),
			ContentType:  obj.contentType,
			LastModified: obj.modified,
		}
	}
	return infos, nil
}

// CreateBucket creates a new empty bucket.
func (d *Driver) CreateBucket(_ context.Context, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.buckets[name]; ok {
		return errs.Newf(errs.KindAlreadyExists, "bucket %q already exists", name)
	}
	d.buckets[name] = &bucket{
		createdAt: time.Now(),
		objects:   make(map[string]storedObject),
	}
	return nil
}

// DeleteBucket removes an empty bucket. Like a real backend it rejects
// deletion while objects remain.
func (d *Driver) DeleteBucket(_ context.Context, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[name]
	if !ok {
		return errs.Newf(errs.KindNotFound, "bucket %q does not exist", name)
	}
	if len(b.objects) > 0 {
		return errs.Newf(errs.KindBackend, "bucket %q is not empty", name)
	}
	delete(d.buckets, name)
	return nil
}

// PutObject stores the reader's content under key, overwriting any
// existing object.
func (d *Driver) PutObject(_ context.Context, name, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errs.Wrap(errs.KindBackend, "failed to read object content", err)
	}
	if size >= 0 && int64(len(data)) != size {
		return errs.Newf(errs.KindBackend, "short write: got %d bytes, declared %d", len(data), size)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[name]
	if !ok {
		return errs.Newf(errs.KindNotFound, "bucket %q does not exist", name)
	}
	b.objects[key] = storedObject{
		data:        data,
		contentType: contentType,
		modified:    time.Now(),
	}
	return nil
}

// GetObject returns a handle over a copy of the stored bytes.
func (d *Driver) GetObject(_ context.Context, name, key string) (filestore.Object, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	b, ok := d.buckets[name]
	if !ok {
		return nil, errs.Newf(errs.KindNotFound, "bucket %q does not exist", name)
	}
	obj, ok := b.objects[key]
	if !ok {
		return nil, errs.Newf(errs.KindNotFound, "object %q does not exist in bucket %q", key, name)
	}

	return &object{
		ReadCloser: io.NopCloser(bytes.NewReader(obj.data)),
		info: &filestore.ObjectInfo{
			Key:          key,
			Size:         int64(len(obj.data)),
			ContentType:  obj.contentType,
			LastModified: obj.modified,
		},
	}, nil
}

// StatObject returns metadata for the object at key.
func (d *Driver) StatObject(ctx context.Context, name, key string) (*filestore.ObjectInfo, error) {
	obj, err := d.GetObject(ctx, name, key)
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return obj.Info(), nil
}

// RemoveObjects deletes the named keys. Missing keys are skipped, matching
// the best-effort batch semantics of the S3 API.
func (d *Driver) RemoveObjects(_ context.Context, name string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[name]
	if !ok {
		return errs.Newf(errs.KindNotFound, "bucket %q does not exist", name)
	}
	for _, key := range keys {
		delete(b.objects, key)
	}
	return nil
}

// PresignGetURL returns a synthetic URL; nothing serves it, but the shape
// lets the web layer be exercised without a real backend.
func (d *Driver) PresignGetURL(ctx context.Context, name, key string, ttl time.Duration) (string, error) {
	if _, err := d.StatObject(ctx, name, key); err != nil {
		return "", err
	}
	expires := time.Now().Add(ttl).Unix()
	return fmt.Sprintf("memory://%s/%s?expires=%d", name, key, expires), nil
}

// --- internal types ---

type object struct {
	io.ReadCloser
	info *filestore.ObjectInfo
}

func (o *object) Info() *filestore.ObjectInfo {
	return o.info
}

var _ filestore.Store = (*Driver)(nil)
