package errors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	InvalidRequest         Kind = "invalid_request"
	SourceNotFound         Kind = "source_not_found"
	TargetNotDirectory     Kind = "target_not_directory"
	RecursiveConflict      Kind = "recursive_conflict"
	MissingTargetDirectory Kind = "missing_target_directory"
	InsufficientSpace      Kind = "insufficient_space"
	PermissionDenied       Kind = "permission_denied"
	CrossDevice            Kind = "cross_device"
	TrashUnavailable       Kind = "trash_unavailable"
	SameFile               Kind = "same_file"
	Aborted                Kind = "aborted"
	IOFailure              Kind = "io_failure"
	Internal               Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// New builds an AppError without an underlying cause.
func New(kind Kind, op, path string) error {
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  errors.New(string(kind)),
	}
}

// KindOf extracts the Kind from an error chain, Internal when none applies.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// PathOf extracts the offending path from an error chain, empty when none.
func PathOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Path
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
