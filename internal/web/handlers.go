package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/srishtisingh2026/S3-File-Manager/internal/auditlog"
	"github.com/srishtisingh2026/S3-File-Manager/internal/bucketops"
	"github.com/srishtisingh2026/S3-File-Manager/internal/errs"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore"
	"github.com/srishtisingh2026/S3-File-Manager/internal/validate"
)

// uploadMemoryLimit bounds how much of a multipart upload is buffered in
// memory before spilling to disk.
const uploadMemoryLimit = 32 << 20

// presignTTL is how long a generated download link stays valid.
const presignTTL = 15 * time.Minute

type homeData struct {
	Buckets []filestore.BucketInfo
	Success string
	Error   string
}

type bucketData struct {
	Bucket  string
	Files   []filestore.ObjectInfo
	Buckets []filestore.BucketInfo
	Success string
	Error   string
}

type confirmData struct {
	Bucket string
	Count  int
}

// handleHome renders the bucket list. A backend failure here has no
// bucket page to fall back to, so it propagates as a 500.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.store.ListBuckets(r.Context())
	if err != nil {
		s.log.ErrorWith("failed to list buckets", err, nil)
		http.Error(w, "storage backend unavailable", http.StatusInternalServerError)
		return
	}

	s.render(w, "index.html", homeData{
		Buckets: buckets,
		Success: r.URL.Query().Get("success"),
		Error:   r.URL.Query().Get("error"),
	})
}

// handleViewBucket renders the file list for one bucket. Listings that
// fail render as empty rather than erroring the page.
func (s *Server) handleViewBucket(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")

	files := bucketops.ListObjects(r.Context(), s.store, bucket)
	// bucket list feeds the copy/move destination picker
	buckets, err := s.store.ListBuckets(r.Context())
	if err != nil {
		s.log.ErrorWith("failed to list buckets for picker", err, map[string]any{"bucket": bucket})
	}

	s.render(w, "bucket.html", bucketData{
		Bucket:  bucket,
		Files:   files,
		Buckets: buckets,
		Success: r.URL.Query().Get("success"),
		Error:   r.URL.Query().Get("error"),
	})
}

// handleCreateBucket validates the name and creates the bucket.
// This is the one route that surfaces backend detail in its error
// message; everything else answers with a fixed string.
func (s *Server) handleCreateBucket(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("bucket_name")

	if !validate.BucketName(name) {
		redirectError(w, r, "/", "Invalid bucket name. Use only lowercase letters, numbers, and hyphens.")
		return
	}

	err := s.store.CreateBucket(r.Context(), name)
	switch {
	case err == nil:
		s.audit(r, auditlog.Entry{Action: auditlog.ActionCreateBucket, Bucket: name, Outcome: auditlog.OutcomeSuccess})
		redirectSuccess(w, r, "/", fmt.Sprintf("Bucket '%s' created successfully", name))
	case errs.IsAlreadyExists(err):
		s.auditFailure(r, auditlog.Entry{Action: auditlog.ActionCreateBucket, Bucket: name}, err)
		redirectError(w, r, "/", fmt.Sprintf("Bucket '%s' already exists", name))
	default:
		s.auditFailure(r, auditlog.Entry{Action: auditlog.ActionCreateBucket, Bucket: name}, err)
		redirectError(w, r, "/", fmt.Sprintf("Failed to create bucket: %s", err.Error()))
	}
}

// handleDeleteBucket deletes a bucket. A non-empty bucket without an
// explicit force answers with a confirmation page instead of deleting.
func (s *Server) handleDeleteBucket(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("bucket_name")
	force, _ := strconv.ParseBool(r.FormValue("force"))

	files := bucketops.ListObjects(r.Context(), s.store, name)

	if len(files) > 0 && !force {
		s.render(w, "confirm_delete.html", confirmData{Bucket: name, Count: len(files)})
		return
	}

	if len(files) > 0 {
		if err := bucketops.EmptyBucket(r.Context(), s.store, name); err != nil {
			s.auditFailure(r, auditlog.Entry{Action: auditlog.ActionDeleteBucket, Bucket: name}, err)
			redirectError(w, r, "/", fmt.Sprintf("Failed to delete bucket '%s'", name))
			return
		}
	}

	if err := s.store.DeleteBucket(r.Context(), name); err != nil {
		s.auditFailure(r, auditlog.Entry{Action: auditlog.ActionDeleteBucket, Bucket: name}, err)
		redirectError(w, r, "/", fmt.Sprintf("Failed to delete bucket '%s'", name))
		return
	}

	s.audit(r, auditlog.Entry{Action: auditlog.ActionDeleteBucket, Bucket: name, Outcome: auditlog.OutcomeSuccess})
	redirectSuccess(w, r, "/", fmt.Sprintf("Bucket '%s' deleted successfully", name))
}

// handleUploadFile stores the uploaded payload under the client-provided
// filename, verbatim.
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		redirectError(w, r, "/", "Invalid upload request")
		return
	}

	bucket := r.FormValue("bucket_name")
	target := "/bucket/" + bucket

	file, header, err := r.FormFile("file")
	if err != nil {
		redirectError(w, r, target, "No file provided")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		redirectError(w, r, target, fmt.Sprintf("Failed to upload file '%s'", header.Filename))
		return
	}

	err = s.store.PutObject(r.Context(), bucket, header.Filename,
		bytes.NewReader(content), int64(len(content)), header.Header.Get("Content-Type"))
	if err != nil {
		s.auditFailure(r, auditlog.Entry{Action: auditlog.ActionUploadFile, Bucket: bucket, Object: header.Filename}, err)
		redirectError(w, r, target, fmt.Sprintf("Failed to upload file '%s'", header.Filename))
		return
	}

	s.audit(r, auditlog.Entry{Action: auditlog.ActionUploadFile, Bucket: bucket, Object: header.Filename, Outcome: auditlog.OutcomeSuccess})
	redirectSuccess(w, r, target, fmt.Sprintf("File '%s' uploaded successfully", header.Filename))
}

// handleDeleteFile removes a single object.
func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	bucket := r.FormValue("bucket_name")
	filename := r.FormValue("filename")

	s.deleteFile(w, r, bucket, filename, "/bucket/"+bucket)
}

// handleFileAction dispatches the combined action form: delete, copy, or
// move. Anything else is an invalid action.
func (s *Server) handleFileAction(w http.ResponseWriter, r *http.Request) {
	src := r.FormValue("src_bucket")
	filename := r.FormValue("filename")
	action := r.FormValue("action")
	dest := r.FormValue("dest_bucket")
	target := "/bucket/" + src

	switch action {
	case "delete":
		s.deleteFile(w, r, src, filename, target)

	case "copy", "move":
		move := action == "move"
		msg, err := bucketops.CopyOrMoveFiles(r.Context(), s.store, src, []string{filename}, dest, move)

		entry := auditlog.Entry{Action: auditlog.ActionCopyFile, Bucket: src, Object: filename, DestBucket: dest}
		if move {
			entry.Action = auditlog.ActionMoveFile
		}

		if err != nil {
			s.auditFailure(r, entry, err)
			redirectError(w, r, target, errs.UserMessage(err))
			return
		}
		entry.Outcome = auditlog.OutcomeSuccess
		entry.Detail = msg
		s.audit(r, entry)
		redirectSuccess(w, r, target, msg)

	default:
		redirectError(w, r, target, "Invalid action")
	}
}

// handleDownloadFile answers with a redirect to a short-lived presigned
// URL served by the backend itself.
func (s *Server) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	bucket := r.URL.Query().Get("bucket")
	filename := r.URL.Query().Get("filename")
	target := "/bucket/" + bucket

	u, err := s.store.PresignGetURL(r.Context(), bucket, filename, presignTTL)
	if err != nil {
		if errs.IsNotFound(err) {
			redirectError(w, r, target, fmt.Sprintf("File '%s' not found in bucket '%s'", filename, bucket))
			return
		}
		s.log.ErrorWith("failed to presign download", err, map[string]any{"bucket": bucket, "file": filename})
		redirectError(w, r, target, fmt.Sprintf("Failed to download file '%s'", filename))
		return
	}

	http.Redirect(w, r, u, http.StatusSeeOther)
}

// deleteFile is shared by the delete-file route and the file-action
// dispatcher; only the redirect target differs.
func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request, bucket, filename, target string) {
	err := s.store.RemoveObjects(r.Context(), bucket, []string{filename})
	if err != nil {
		s.auditFailure(r, auditlog.Entry{Action: auditlog.ActionDeleteFile, Bucket: bucket, Object: filename}, err)
		redirectError(w, r, target, fmt.Sprintf("Failed to delete file '%s'", filename))
		return
	}

	s.audit(r, auditlog.Entry{Action: auditlog.ActionDeleteFile, Bucket: bucket, Object: filename, Outcome: auditlog.OutcomeSuccess})
	redirectSuccess(w, r, target, fmt.Sprintf("File '%s' deleted successfully", filename))
}

// --- shared helpers ---

// render executes one page template. Template failures after headers are
// written can only be logged.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.ErrorWith("failed to render template", err, map[string]any{"template": name})
	}
}

// audit records an entry; a recording failure is logged and never
// changes the response.
func (s *Server) audit(r *http.Request, e auditlog.Entry) {
	if err := s.auditor.Record(r.Context(), e); err != nil {
		s.log.ErrorWith("failed to record audit entry", err, map[string]any{"action": string(e.Action)})
	}
}

func (s *Server) auditFailure(r *http.Request, e auditlog.Entry, cause error) {
	e.Outcome = auditlog.OutcomeFailure
	e.Detail = cause.Error()
	s.audit(r, e)
}

// redirectSuccess answers with a 303 whose location carries msg in the
// success query parameter.
func redirectSuccess(w http.ResponseWriter, r *http.Request, path, msg string) {
	redirectWith(w, r, path, "success", msg)
}

// redirectError answers with a 303 whose location carries msg in the
// error query parameter.
func redirectError(w http.ResponseWriter, r *http.Request, path, msg string) {
	redirectWith(w, r, path, "error", msg)
}

func redirectWith(w http.ResponseWriter, r *http.Request, path, key, msg string) {
	u := url.URL{
		Path:     path,
		RawQuery: url.Values{key: {msg}}.Encode(),
	}
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}
