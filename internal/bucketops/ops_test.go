package bucketops

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/srishtisingh2026/S3-File-Manager/internal/errs"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, buckets ...string) *memory.Driver {
	t.Helper()
	d := memory.New()
	for _, b := range buckets {
		require.NoError(t, d.CreateBucket(context.Background(), b))
	}
	return d
}

func put(t *testing.T, d *memory.Driver, bucket, key, content string) {
	t.Helper()
	err := d.PutObject(context.Background(), bucket, key, bytes.NewReader([]byte(content)), int64(len(content)), "text/plain")
	require.NoError(t, err)
}

func keys(t *testing.T, d *memory.Driver, bucket string) []string {
	t.Helper()
	infos, err := d.ListObjects(context.Background(), bucket, filestore.ListOptions{})
	require.NoError(t, err)
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Key
	}
	return out
}

func TestListObjectsSwallowsErrors(t *testing.T) {
	ctx := context.Background()
	d := newStore(t, "b")
	put(t, d, "b", "a.txt", "1")

	assert.Len(t, ListObjects(ctx, d, "b"), 1)

	// a bucket that cannot be listed renders as empty
	assert.Empty(t, ListObjects(ctx, d, "no-such-bucket"))
}

func TestEmptyBucket(t *testing.T) {
	ctx := context.Background()
	d := newStore(t, "b")
	put(t, d, "b", "a.txt", "1")
	put(t, d, "b", "b.txt", "2")

	require.NoError(t, EmptyBucket(ctx, d, "b"))
	assert.Empty(t, keys(t, d, "b"))

	// already empty is a no-op, as is a missing bucket
	assert.NoError(t, EmptyBucket(ctx, d, "b"))
	assert.NoError(t, EmptyBucket(ctx, d, "no-such-bucket"))
}

func TestCopyOrMoveFiles_EmptyListIsVacuousSuccess(t *testing.T) {
	ctx := context.Background()
	d := newStore(t, "src", "dst")

	msg, err := CopyOrMoveFiles(ctx, d, "src", nil, "dst", false)
	require.NoError(t, err)
	assert.Equal(t, "Files copied successfully", msg)

	msg, err = CopyOrMoveFiles(ctx, d, "src", nil, "dst", true)
	require.NoError(t, err)
	assert.Equal(t, "Files moved successfully", msg)
}

func TestCopyOrMoveFiles_DestinationRequired(t *testing.T) {
	ctx := context.Background()
	d := newStore(t, "src")
	put(t, d, "src", "a.txt", "1")

	for _, files := range [][]string{nil, {"a.txt"}} {
		_, err := CopyOrMoveFiles(ctx, d, "src", files, "", true)
		require.Error(t, err)
		assert.True(t, errs.IsDestinationRequired(err))
		assert.Equal(t, "Destination bucket is required", errs.UserMessage(err))
	}
}

func TestCopyOrMoveFiles_CollisionLeavesSourceUntouched(t *testing.T) {
	ctx := context.Background()
	d := newStore(t, "src", "dst")
	put(t, d, "src", "a.txt", "source content")
	put(t, d, "dst", "a.txt", "dest content")

	_, err := CopyOrMoveFiles(ctx, d, "src", []string{"a.txt"}, "dst", true)
	require.Error(t, err)
	assert.True(t, errs.IsCollision(err))
	assert.Equal(t, "File 'a.txt' already exists in destination bucket 'dst'", errs.UserMessage(err))

	// source not removed even though move=true
	assert.Equal(t, []string{"a.txt"}, keys(t, d, "src"))

	// destination content not overwritten
	obj, err := d.GetObject(ctx, "dst", "a.txt")
	require.NoError(t, err)
	defer obj.Close()
	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "dest content", string(data))
}

func TestCopyOrMoveFiles_Move(t *testing.T) {
	ctx := context.Background()
	d := newStore(t, "src", "dst")
	put(t, d, "src", "a.txt", "payload")

	msg, err := CopyOrMoveFiles(ctx, d, "src", []string{"a.txt"}, "dst", true)
	require.NoError(t, err)
	assert.Equal(t, "Files moved successfully", msg)

	assert.Empty(t, keys(t, d, "src"))
	assert.Equal(t, []string{"a.txt"}, keys(t, d, "dst"))

	obj, err := d.GetObject(ctx, "dst", "a.txt")
	require.NoError(t, err)
	defer obj.Close()
	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCopyOrMoveFiles_CopyKeepsSource(t *testing.T) {
	ctx := context.Background()
	d := newStore(t, "src", "dst")
	put(t, d, "src", "a.txt", "payload")

	msg, err := CopyOrMoveFiles(ctx, d, "src", []string{"a.txt"}, "dst", false)
	require.NoError(t, err)
	assert.Equal(t, "Files copied successfully", msg)

	assert.Equal(t, []string{"a.txt"}, keys(t, d, "src"))
	assert.Equal(t, []string{"a.txt"}, keys(t, d, "dst"))
}

func TestCopyOrMoveFiles_SourceMissing(t *testing.T) {
	ctx := context.Background()
	d := newStore(t, "src", "dst")

	_, err := CopyOrMoveFiles(ctx, d, "src", []string{"ghost.txt"}, "dst", false)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "File 'ghost.txt' not found in source bucket 'src'", errs.UserMessage(err))
}

func TestCopyOrMoveFiles_PartialCompletionOnFailure(t *testing.T) {
	ctx := context.Background()
	d := newStore(t, "src", "dst")
	put(t, d, "src", "a.txt", "1")
	put(t, d, "src", "b.txt", "2")
	put(t, d, "dst", "b.txt", "existing") // second file collides

	_, err := CopyOrMoveFiles(ctx, d, "src", []string{"a.txt", "b.txt"}, "dst", true)
	require.Error(t, err)
	assert.True(t, errs.IsCollision(err))

	// the first file was already moved and stays moved — no rollback
	assert.Equal(t, []string{"b.txt"}, keys(t, d, "src"))
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, keys(t, d, "dst"))
}
