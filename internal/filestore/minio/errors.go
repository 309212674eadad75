package minio

import (
	"errors"
	"net/http"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/srishtisingh2026/S3-File-Manager/internal/errs"
)

// mapError translates a MinIO SDK error into a *errs.Error.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	// MinIO SDK exposes a typed ErrorResponse for S3-protocol errors
	var resp miniogo.ErrorResponse
	if errors.As(err, &resp) {
		// S3 error codes carry more precision than the HTTP status
		switch resp.Code {
		case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
			return errs.Wrap(errs.KindAlreadyExists, msg, err)
		case "NoSuchBucket", "NoSuchKey", "NoSuchUpload":
			return errs.Wrap(errs.KindNotFound, msg, err)
		case "BucketNotEmpty":
			// deleting a non-empty bucket is a generic failure here;
			// callers empty the bucket before deleting
			return errs.Wrap(errs.KindBackend, msg, err)
		}

		if resp.StatusCode == http.StatusNotFound {
			return errs.Wrap(errs.KindNotFound, msg, err)
		}
	}

	// Anything else — permission failures, timeouts, connectivity —
	// is a generic backend failure to this system.
	return errs.Wrap(errs.KindBackend, msg, err)
}
