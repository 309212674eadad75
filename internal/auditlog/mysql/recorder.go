// Package mysql provides a MySQL auditlog.Recorder on database/sql.
package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/srishtisingh2026/S3-File-Manager/internal/auditlog"
	"github.com/srishtisingh2026/S3-File-Manager/internal/errs"
)

const (
	defaultMaxOpenConns    = 4
	defaultMaxIdleConns    = 2
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 10 * time.Minute
	defaultOpenTimeout     = 10 * time.Second
)

const schema = `
CREATE TABLE IF NOT EXISTS storage_audit (
	id          BIGINT AUTO_INCREMENT PRIMARY KEY,
	recorded_at DATETIME(6) NOT NULL,
	action      VARCHAR(32) NOT NULL,
	bucket      VARCHAR(255) NOT NULL,
	object      VARCHAR(1024) NOT NULL DEFAULT '',
	dest_bucket VARCHAR(255) NOT NULL DEFAULT '',
	outcome     VARCHAR(16) NOT NULL,
	detail      TEXT
)`

const insert = `
INSERT INTO storage_audit (recorded_at, action, bucket, object, dest_bucket, outcome, detail)
VALUES (?, ?, ?, ?, ?, ?, ?)`

// Recorder persists audit entries to a storage_audit table.
// It is safe for concurrent use.
type Recorder struct {
	db *sql.DB
}

// New opens a MySQL pool using cfg.DSN (go-sql-driver format, e.g.
// "user:pass@tcp(host:3306)/dbname?parseTime=true") and ensures the
// audit table exists before returning.
func New(ctx context.Context, cfg *auditlog.Config) (*Recorder, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.KindBackend, "invalid mysql audit DSN", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	openCtx, cancel := context.WithTimeout(ctx, defaultOpenTimeout)
	defer cancel()

	if err := db.PingContext(openCtx); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.KindBackend, "failed to reach mysql audit database", err)
	}

	if _, err := db.ExecContext(openCtx, schema); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.KindBackend, "failed to create audit table", err)
	}

	return &Recorder{db: db}, nil
}

// Record appends one entry.
func (r *Recorder) Record(ctx context.Context, e auditlog.Entry) error {
	e = e.Normalized()
	_, err := r.db.ExecContext(ctx, insert,
		e.Time, string(e.Action), e.Bucket, e.Object, e.DestBucket, string(e.Outcome), e.Detail)
	if err != nil {
		return errs.Wrap(errs.KindBackend, "failed to record audit entry", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (r *Recorder) Close() error {
	return r.db.Close()
}

var _ auditlog.Recorder = (*Recorder)(nil)
