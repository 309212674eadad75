// Command server runs the web front-end for the storage backend.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/srishtisingh2026/S3-File-Manager/internal/auditlog"
	auditmysql "github.com/srishtisingh2026/S3-File-Manager/internal/auditlog/mysql"
	auditpg "github.com/srishtisingh2026/S3-File-Manager/internal/auditlog/postgres"
	"github.com/srishtisingh2026/S3-File-Manager/internal/config"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore/memory"
	"github.com/srishtisingh2026/S3-File-Manager/internal/filestore/minio"
	"github.com/srishtisingh2026/S3-File-Manager/internal/logger"
	"github.com/srishtisingh2026/S3-File-Manager/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file (optional; env overrides apply)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New(nil).Fatalf("invalid configuration: %v", err)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to storage backend: %v", err)
	}
	defer store.Close()

	auditor, err := openAuditor(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open audit trail: %v", err)
	}
	defer auditor.Close()

	srv, err := web.New(store, auditor, log)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	go func() {
		log.With().
			Str("addr", cfg.Server.Addr).
			Str("provider", string(cfg.Storage.Provider)).
			Logger().
			Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}

// openStore constructs the storage driver named by the config.
func openStore(ctx context.Context, cfg *config.Config) (filestore.Store, error) {
	switch cfg.Storage.Provider {
	case filestore.ProviderMemory:
		return memory.New(), nil
	default:
		return minio.New(ctx, &cfg.Storage)
	}
}

// openAuditor constructs the audit recorder named by the config.
// No driver configured means auditing is off.
func openAuditor(ctx context.Context, cfg *config.Config) (auditlog.Recorder, error) {
	switch cfg.Audit.Driver {
	case auditlog.DriverPostgres:
		return auditpg.New(ctx, &cfg.Audit)
	case auditlog.DriverMySQL:
		return auditmysql.New(ctx, &cfg.Audit)
	default:
		return auditlog.Nop{}, nil
	}
}
