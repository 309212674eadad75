// Package web is the HTTP surface of the file manager: a chi router over
// server-rendered HTML pages with redirect-based feedback. Handlers are
// stateless; every mutating operation is a form POST answered with a 303
// redirect carrying a success or error query parameter.
package web

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/srishtisingh2026/S3-File-Manager/internal/auditlog"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore"
	"github.com/srishtisingh2026/S3-File-Manager/internal/logger"
)

// Server holds the dependencies shared by all handlers. It carries no
// per-request state; all durable state lives in the storage backend.
type Server struct {
	store   filestore.Store
	auditor auditlog.Recorder
	log     *logger.Logger
	tmpl    *template.Template
}

// New constructs a Server and parses its page templates.
func New(store filestore.Store, auditor auditlog.Recorder, log *logger.Logger) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Server{
		store:   store,
		auditor: auditor,
		log:     log,
		tmpl:    tmpl,
	}, nil
}

// Router wires all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/bucket/{bucket}", s.handleViewBucket)
	r.Get("/download-file", s.handleDownloadFile)

	r.Post("/create-bucket", s.handleCreateBucket)
	r.Post("/delete-bucket", s.handleDeleteBucket)
	r.Post("/upload-file", s.handleUploadFile)
	r.Post("/delete-file", s.handleDeleteFile)
	r.Post("/file-action", s.handleFileAction)

	return r
}
