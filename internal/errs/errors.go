// Package errs provides the unified error type used across the file manager.
//
// Every subsystem (filestore, bucketops, auditlog, web) wraps its native
// errors into *errs.Error before returning them to callers. Callers use the
// Is* predicates to handle errors without importing driver-specific packages,
// and UserMessage to turn any error into the string shown to the user.
//
// Usage:
//
//	// In a driver — wrap native errors:
//	return errs.Wrap(errs.KindBackend, "failed to upload object", s3Err)
//
//	// In a handler — check error kind:
//	if errs.IsAlreadyExists(err) {
//	    redirectError(w, r, "/", fmt.Sprintf("Bucket %q already exists", name))
//	}
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises an error without exposing backend-specific codes.
// Drivers map their native errors to one of these kinds, giving the
// handler layer a single consistent API.
type Kind int

const (
	KindUnknown             Kind = iota
	KindInvalidName              // bucket or file name fails syntax validation
	KindAlreadyExists            // bucket name collides on create
	KindNotFound                 // no such object or bucket
	KindDestinationRequired      // copy/move submitted without a destination bucket
	KindCollision                // copy/move target name already present at destination
	KindBackend                  // any other remote storage failure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidName:
		return "invalid_name"
	case KindAlreadyExists:
		return "already_exists"
	case KindNotFound:
		return "not_found"
	case KindDestinationRequired:
		return "destination_required"
	case KindCollision:
		return "collision"
	case KindBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all subsystems.
// Drivers produce it; handlers inspect it via the Is* predicates below.
type Error struct {
	Kind    Kind
	Message string // user-facing description, safe to show in a redirect
	Cause   error  // original backend-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an *Error with a formatted message and no cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsInvalidName reports whether err was caused by a name failing validation.
func IsInvalidName(err error) bool {
	return KindOf(err) == KindInvalidName
}

// IsAlreadyExists reports whether err represents a bucket-name collision.
func IsAlreadyExists(err error) bool {
	return KindOf(err) == KindAlreadyExists
}

// IsNotFound reports whether err represents a missing object or bucket.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsDestinationRequired reports whether err is a copy/move with no destination.
func IsDestinationRequired(err error) bool {
	return KindOf(err) == KindDestinationRequired
}

// IsCollision reports whether err is a copy/move destination collision.
func IsCollision(err error) bool {
	return KindOf(err) == KindCollision
}

// IsBackend reports whether err is a generic remote storage failure.
func IsBackend(err error) bool {
	return KindOf(err) == KindBackend
}

// KindOf extracts the Kind from any error in the chain.
// Errors that do not carry an *Error report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// genericMessage is shown when an error carries no user-facing message
// of its own. Backend detail never leaks into redirects through this path.
const genericMessage = "Operation failed, please try again"

// UserMessage maps an error to the string embedded in a redirect.
// Recognized errors carry their own message; anything else collapses
// to a fixed generic string.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return genericMessage
}
