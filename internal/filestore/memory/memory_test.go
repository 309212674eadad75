package memory

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/srishtisingh2026/S3-File-Manager/internal/errs"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, d *Driver, bucket, key, content string) {
	t.Helper()
	err := d.PutObject(context.Background(), bucket, key, bytes.NewReader([]byte(content)), int64(len(content)), "text/plain")
	require.NoError(t, err)
}

func TestBucketLifecycle(t *testing.T) {
	ctx := context.Background()
	d := New()

	buckets, err := d.ListBuckets(ctx)
	require.NoError(t, err)
	assert.Empty(t, buckets)

	require.NoError(t, d.CreateBucket(ctx, "my-bucket"))

	err = d.CreateBucket(ctx, "my-bucket")
	assert.True(t, errs.IsAlreadyExists(err))

	buckets, err = d.ListBuckets(ctx)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, "my-bucket", buckets[0].Name)
	assert.False(t, buckets[0].CreatedAt.IsZero())

	require.NoError(t, d.DeleteBucket(ctx, "my-bucket"))
	err = d.DeleteBucket(ctx, "my-bucket")
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteBucketRejectsNonEmpty(t *testing.T) {
	ctx := context.Background()
	d := New()
	require.NoError(t, d.CreateBucket(ctx, "b"))
	put(t, d, "b", "a.txt", "hello")

	err := d.DeleteBucket(ctx, "b")
	assert.True(t, errs.IsBackend(err))

	require.NoError(t, d.RemoveObjects(ctx, "b", []string{"a.txt"}))
	assert.NoError(t, d.DeleteBucket(ctx, "b"))
}

func TestObjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := New()
	require.NoError(t, d.CreateBucket(ctx, "b"))
	put(t, d, "b", "a.txt", "hello world")

	obj, err := d.GetObject(ctx, "b", "a.txt")
	require.NoError(t, err)
	defer obj.Close()

	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
	assert.Equal(t, int64(11), obj.Info().Size)
	assert.Equal(t, "text/plain", obj.Info().ContentType)

	_, err = d.GetObject(ctx, "b", "missing.txt")
	assert.True(t, errs.IsNotFound(err))

	_, err = d.GetObject(ctx, "nope", "a.txt")
	assert.True(t, errs.IsNotFound(err))
}

func TestListObjects(t *testing.T) {
	ctx := context.Background()
	d := New()
	require.NoError(t, d.CreateBucket(ctx, "b"))
	put(t, d, "b", "b.txt", "2")
	put(t, d, "b", "a.txt", "1")
	put(t, d, "b", "notes.md", "3")

	infos, err := d.ListObjects(ctx, "b", filestore.ListOptions{})
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "a.txt", infos[0].Key) // sorted
	assert.Equal(t, "b.txt", infos[1].Key)

	infos, err = d.ListObjects(ctx, "b", filestore.ListOptions{Prefix: "a"})
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "a.txt", infos[0].Key)

	infos, err = d.ListObjects(ctx, "b", filestore.ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	_, err = d.ListObjects(ctx, "missing", filestore.ListOptions{})
	assert.True(t, errs.IsNotFound(err))
}

func TestRemoveObjectsBestEffort(t *testing.T) {
	ctx := context.Background()
	d := New()
	require.NoError(t, d.CreateBucket(ctx, "b"))
	put(t, d, "b", "a.txt", "1")
	put(t, d, "b", "b.txt", "2")

	// missing keys are skipped, present keys removed
	require.NoError(t, d.RemoveObjects(ctx, "b", []string{"a.txt", "ghost.txt"}))

	infos, err := d.ListObjects(ctx, "b", filestore.ListOptions{})
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "b.txt", infos[0].Key)

	// empty batch is a no-op even for a missing bucket
	assert.NoError(t, d.RemoveObjects(ctx, "missing", nil))
}

func TestPresignGetURL(t *testing.T) {
	ctx := context.Background()
	d := New()
	require.NoError(t, d.CreateBucket(ctx, "b"))
	put(t, d, "b", "a.txt", "1")

	u, err := d.PresignGetURL(ctx, "b", "a.txt", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, u, "memory://b/a.txt")

	_, err = d.PresignGetURL(ctx, "b", "missing.txt", time.Minute)
	assert.True(t, errs.IsNotFound(err))
}
