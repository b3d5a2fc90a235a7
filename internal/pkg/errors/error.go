package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("conflict: resource already exists")
	ErrInternal = errors.New("internal server error")
)

// ValidationError reports input that violates an entity invariant or that
// the schema mapper cannot translate. It is always raised before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// PaginationError reports a page request outside the valid range.
type PaginationError struct {
	Page     int
	PageSize int
}

func (e *PaginationError) Error() string {
	return fmt.Sprintf("invalid pagination: page=%d page_size=%d (both must be >= 1)", e.Page, e.PageSize)
}

// TypeMismatchError reports a segmentation rule operator applied to a field
// of an incompatible type.
type TypeMismatchError struct {
	Field    string
	Operator string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operator %q cannot be applied to field %q", e.Operator, e.Field)
}

// TransportError wraps a storage backend failure. The backend message is
// preserved verbatim; callers must not inspect or retry on its contents.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPagination reports whether err is (or wraps) a PaginationError.
func IsPagination(err error) bool {
	var pe *PaginationError
	return errors.As(err, &pe)
}

// IsTypeMismatch reports whether err is (or wraps) a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var te *TypeMismatchError
	return errors.As(err, &te)
}
