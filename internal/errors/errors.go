// Package errors provides the error definitions shared by the tvview
// packages: sentinel errors for content-source failures, a SourceError type
// that carries which source failed, and a few classification helpers.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewSourceError(errors.KindProcess, "./build.sh", errors.ErrSpawnFailed)
//	err = err.WithCause(execErr)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrSpawnFailed) { ... }
//
//	var srcErr *errors.SourceError
//	if errors.As(err, &srcErr) {
//	    fmt.Println(srcErr.Explain())
//	}
//
// Source errors are never fatal: the viewer substitutes [SourceError.Explain]
// for the missing content and keeps running.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityWarning is for errors the viewer recovers from without user impact.
	SeverityWarning Severity = iota
	// SeverityError is for errors that replace or truncate the displayed content.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrSpawnFailed indicates that the script or its shell could not be started.
	ErrSpawnFailed = New("failed to execute script")
	// ErrSourceUnreadable indicates that a file could not be opened or read.
	ErrSourceUnreadable = New("unable to read input")
	// ErrReadFailed indicates that reading from a running source failed midway.
	ErrReadFailed = New("error reading output")
	// ErrInvalidInput indicates that command line input failed validation.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// SourceError
// -----------------------------------------------------------------------------

// SourceKind identifies the kind of content source that produced an error.
type SourceKind string

const (
	KindText    SourceKind = "text"
	KindFile    SourceKind = "file"
	KindProcess SourceKind = "process"
)

// SourceError describes a content-source failure.
//
// Example:
//
//	err := errors.NewSourceError(errors.KindFile, "/var/log/app.log", errors.ErrSourceUnreadable)
//	fmt.Println(err) // "file source [/var/log/app.log]: unable to read input"
type SourceError struct {
	Kind     SourceKind
	Target   string // file path or command line
	sentinel error
	cause    error
	severity Severity
}

// NewSourceError creates a SourceError for the given source and sentinel.
func NewSourceError(kind SourceKind, target string, sentinel error) *SourceError {
	return &SourceError{
		Kind:     kind,
		Target:   target,
		sentinel: sentinel,
		severity: SeverityError,
	}
}

// WithCause attaches the underlying error.
func (e *SourceError) WithCause(cause error) *SourceError {
	e.cause = cause
	return e
}

// WithSeverity sets the error severity.
func (e *SourceError) WithSeverity(s Severity) *SourceError {
	e.severity = s
	return e
}

// Severity returns the error severity.
func (e *SourceError) Severity() Severity {
	return e.severity
}

// Error returns the formatted error message.
func (e *SourceError) Error() string {
	prefix := fmt.Sprintf("%s source", e.Kind)
	if e.Target != "" {
		prefix = fmt.Sprintf("%s source [%s]", e.Kind, e.Target)
	}

	msg := "unknown error"
	if e.sentinel != nil {
		msg = e.sentinel.Error()
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

// Unwrap returns the sentinel and the cause so that errors.Is matches both.
func (e *SourceError) Unwrap() []error {
	var errs []error
	if e.sentinel != nil {
		errs = append(errs, e.sentinel)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// Explain returns the text the viewer shows in place of the content.
func (e *SourceError) Explain() string {
	var sb strings.Builder
	if e.sentinel != nil {
		msg := e.sentinel.Error()
		sb.WriteString(strings.ToUpper(msg[:1]) + msg[1:])
	} else {
		sb.WriteString("Unknown error")
	}
	if e.Target != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Target)
	}
	sb.WriteString("\n")
	if e.cause != nil {
		sb.WriteString("\n")
		sb.WriteString(e.cause.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsSourceFailure reports whether err is a SourceError.
func IsSourceFailure(err error) bool {
	var srcErr *SourceError
	return As(err, &srcErr)
}

// GetSeverity returns the severity of err, defaulting to SeverityError for
// errors that do not carry one.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityWarning
	}
	var srcErr *SourceError
	if As(err, &srcErr) {
		return srcErr.Severity()
	}
	return SeverityError
}
