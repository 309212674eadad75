// Package postgres provides a PostgreSQL auditlog.Recorder backed by pgxpool.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srishtisingh2026/S3-File-Manager/internal/auditlog"
	"github.com/srishtisingh2026/S3-File-Manager/internal/errs"
)

const (
	defaultMaxConns    = 4
	defaultMinConns    = 1
	defaultConnIdle    = 5 * time.Minute
	defaultOpenTimeout = 10 * time.Second
)

const schema = `
CREATE TABLE IF NOT EXISTS storage_audit (
	id          BIGSERIAL PRIMARY KEY,
	recorded_at TIMESTAMPTZ NOT NULL,
	action      TEXT NOT NULL,
	bucket      TEXT NOT NULL,
	object      TEXT NOT NULL DEFAULT '',
	dest_bucket TEXT NOT NULL DEFAULT '',
	outcome     TEXT NOT NULL,
	detail      TEXT NOT NULL DEFAULT ''
)`

const insert = `
INSERT INTO storage_audit (recorded_at, action, bucket, object, dest_bucket, outcome, detail)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Recorder persists audit entries to a storage_audit table.
// It is safe for concurrent use.
type Recorder struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL using cfg.DSN and ensures the audit table
// exists before returning.
func New(ctx context.Context, cfg *auditlog.Config) (*Recorder, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.KindBackend, "invalid postgres audit DSN", err)
	}
	poolCfg.MaxConns = defaultMaxConns
	poolCfg.MinConns = defaultMinConns
	poolCfg.MaxConnIdleTime = defaultConnIdle

	openCtx, cancel := context.WithTimeout(ctx, defaultOpenTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(openCtx, poolCfg)
	if err != nil {
		return nil, errs.Wrap(errs.KindBackend, "failed to open postgres audit pool", err)
	}

	if _, err := pool.Exec(openCtx, schema); err != nil {
		pool.Close()
		return nil, errs.Wrap(errs.KindBackend, "failed to create audit table", err)
	}

	return &Recorder{pool: pool}, nil
}

// Record appends one entry.
func (r *Recorder) Record(ctx context.Context, e auditlog.Entry) error {
	e = e.Normalized()
	_, err := r.pool.Exec(ctx, insert,
		e.Time, string(e.Action), e.Bucket, e.Object, e.DestBucket, string(e.Outcome), e.Detail)
	if err != nil {
		return errs.Wrap(errs.KindBackend, "failed to record audit entry", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (r *Recorder) Close() error {
	r.pool.Close()
	return nil
}

var _ auditlog.Recorder = (*Recorder)(nil)
