package minio

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/srishtisingh2026/S3-File-Manager/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{
			name: "bucket already exists",
			err:  miniogo.ErrorResponse{Code: "BucketAlreadyExists", StatusCode: http.StatusConflict},
			want: errs.KindAlreadyExists,
		},
		{
			name: "bucket already owned",
			err:  miniogo.ErrorResponse{Code: "BucketAlreadyOwnedByYou", StatusCode: http.StatusConflict},
			want: errs.KindAlreadyExists,
		},
		{
			name: "no such key",
			err:  miniogo.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound},
			want: errs.KindNotFound,
		},
		{
			name: "no such bucket",
			err:  miniogo.ErrorResponse{Code: "NoSuchBucket", StatusCode: http.StatusNotFound},
			want: errs.KindNotFound,
		},
		{
			name: "bucket not empty is generic",
			err:  miniogo.ErrorResponse{Code: "BucketNotEmpty", StatusCode: http.StatusConflict},
			want: errs.KindBackend,
		},
		{
			name: "plain 404 without code",
			err:  miniogo.ErrorResponse{StatusCode: http.StatusNotFound},
			want: errs.KindNotFound,
		},
		{
			name: "access denied",
			err:  miniogo.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden},
			want: errs.KindBackend,
		},
		{
			name: "wrapped error response",
			err:  fmt.Errorf("request: %w", miniogo.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}),
			want: errs.KindNotFound,
		},
		{
			name: "untyped network error",
			err:  errors.New("dial tcp: connection refused"),
			want: errs.KindBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "op failed")
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, "op failed", got.Message)
			assert.ErrorIs(t, got, tt.err) // cause preserved for logging
		})
	}

	assert.Nil(t, mapError(nil, "ignored"))
}
