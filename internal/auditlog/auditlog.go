// Package auditlog records every mutating storage operation in a database.
//
// The web layer appends an Entry for each create/delete/upload/copy/move;
// recording failures are logged and never change the user-visible outcome.
// Drivers live in subpackages (postgres, mysql); a process with no audit
// DSN configured uses Nop.
package auditlog

import (
	"context"
	"time"
)

// Action names the operation being audited.
type Action string

const (
	ActionCreateBucket Action = "create_bucket"
	ActionDeleteBucket Action = "delete_bucket"
	ActionUploadFile   Action = "upload_file"
	ActionDeleteFile   Action = "delete_file"
	ActionCopyFile     Action = "copy_file"
	ActionMoveFile     Action = "move_file"
)

// Outcome states whether the audited operation succeeded.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Entry is one audited operation.
type Entry struct {
	// Time is when the operation completed. Zero means "now".
	Time time.Time

	Action Action

	// Bucket is the bucket acted on (the source bucket for copy/move).
	Bucket string

	// Object is the object name, empty for bucket-level operations.
	Object string

	// DestBucket is set for copy/move only.
	DestBucket string

	Outcome Outcome

	// Detail carries the user-facing status or error message.
	Detail string
}

// Normalized returns a copy of e with a zero Time replaced by the current
// UTC time. Drivers call it before persisting.
func (e Entry) Normalized() Entry {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	return e
}

// Recorder persists audit entries. Implementations are safe for
// concurrent use.
type Recorder interface {
	// Record appends one entry.
	Record(ctx context.Context, e Entry) error

	// Close releases the underlying connection pool.
	Close() error
}

// Driver identifies the audit database engine.
type Driver string

const (
	DriverNone     Driver = ""
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

// Config holds audit trail settings.
type Config struct {
	// Driver selects the database engine; empty disables auditing.
	Driver Driver `yaml:"driver"`

	// DSN is the full connection string for the selected driver.
	DSN string `yaml:"dsn"`
}

// Nop is a Recorder that discards every entry. Used when auditing is
// not configured.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }
func (Nop) Close() error                        { return nil }
