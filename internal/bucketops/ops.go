// Package bucketops implements the multi-step bucket workflows built on
// filestore.Store: listing for page renders, emptying a bucket, and
// copying or moving files between buckets.
//
// None of these workflows is transactional. A failure mid-way leaves the
// steps already completed in place; callers surface the first failure and
// do not roll back.
package bucketops

import (
	"bytes"
	"context"
	"io"

	"github.com/srishtisingh2026/S3-File-Manager/internal/errs"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore"
)

// Success messages returned by CopyOrMoveFiles.
const (
	msgMoved  = "Files moved successfully"
	msgCopied = "Files copied successfully"
)

// ListObjects returns the objects in bucket, or an empty slice if the
// backend call fails for any reason. Page renders and emptiness checks
// treat an unreadable bucket the same as an empty one.
func ListObjects(ctx context.Context, store filestore.Store, bucket string) []filestore.ObjectInfo {
	objects, err := store.ListObjects(ctx, bucket, filestore.ListOptions{})
	if err != nil {
		return nil
	}
	return objects
}

// EmptyBucket deletes every object in bucket with a single batch-remove
// call. A bucket that is already empty (or unreadable) is a no-op. Not
// atomic: a failure mid-batch leaves a partially emptied bucket.
func EmptyBucket(ctx context.Context, store filestore.Store, bucket string) error {
	objects := ListObjects(ctx, store, bucket)
	if len(objects) == 0 {
		return nil
	}

	keys := make([]string, len(objects))
	for i, obj := range objects {
		keys[i] = obj.Key
	}
	return store.RemoveObjects(ctx, bucket, keys)
}

// CopyOrMoveFiles copies (or, when move is true, moves) the named files
// from srcBucket to destBucket, sequentially and under the same names.
//
// For each file it checks the destination for a name collision, downloads
// the source bytes, uploads them to the destination, and — when moving —
// removes the source. The first failing file ends the operation; files
// already processed stay copied/moved. On success it returns a
// human-readable status message. An empty file list succeeds vacuously.
func CopyOrMoveFiles(ctx context.Context, store filestore.Store, srcBucket string, files []string, destBucket string, move bool) (string, error) {
	if destBucket == "" {
		return "", errs.New(errs.KindDestinationRequired, "Destination bucket is required")
	}

	for _, name := range files {
		existing, err := store.ListObjects(ctx, destBucket, filestore.ListOptions{})
		if err != nil {
			return "", errs.Wrap(errs.KindBackend, "Failed to list destination bucket '"+destBucket+"'", err)
		}
		for _, obj := range existing {
			if obj.Key == name {
				return "", errs.Newf(errs.KindCollision,
					"File '%s' already exists in destination bucket '%s'", name, destBucket)
			}
		}

		data, contentType, err := download(ctx, store, srcBucket, name)
		if err != nil {
			if errs.IsNotFound(err) {
				return "", errs.Newf(errs.KindNotFound,
					"File '%s' not found in source bucket '%s'", name, srcBucket)
			}
			return "", err
		}

		if err := store.PutObject(ctx, destBucket, name, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
			return "", err
		}

		if move {
			if err := store.RemoveObjects(ctx, srcBucket, []string{name}); err != nil {
				return "", err
			}
		}
	}

	if move {
		return msgMoved, nil
	}
	return msgCopied, nil
}

// download reads the whole object into memory and returns its content type.
func download(ctx context.Context, store filestore.Store, bucket, key string) ([]byte, string, error) {
	obj, err := store.GetObject(ctx, bucket, key)
	if err != nil {
		return nil, "", err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", errs.Wrap(errs.KindBackend, "Failed to read file '"+key+"'", err)
	}
	return data, obj.Info().ContentType, nil
}
