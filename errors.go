package datum

import (
	"errors"
	"fmt"
)

// Sentinel errors. Structured error types below unwrap to these so callers
// can match with errors.Is without depending on concrete types.
var (
	// ErrFrozen is returned when writing a non-exempt field on a frozen container.
	ErrFrozen = errors.New("datum: container is frozen")

	// ErrNotFrozen is returned when hashing an unfrozen container.
	ErrNotFrozen = errors.New("datum: container is not frozen")

	// ErrUnknownField is returned when reading a field that was never set.
	ErrUnknownField = errors.New("datum: unknown field")

	// ErrUnknownView is returned when resolving a name absent from a view mapping.
	ErrUnknownView = errors.New("datum: unknown view field")
)

// InvalidNameError reports a field name that is not an identifier-shaped string.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("datum: invalid field name %q (must be a valid identifier)", e.Name)
}

// FrozenFieldError reports a write to a non-exempt field on a frozen container.
type FrozenFieldError struct {
	Field string
}

func (e *FrozenFieldError) Error() string {
	return fmt.Sprintf("datum: container is frozen (cannot modify %q)", e.Field)
}

func (e *FrozenFieldError) Unwrap() error { return ErrFrozen }

// UnknownFieldError reports a read of a field that does not exist.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("datum: unknown field %q", e.Field)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// UnknownViewError reports access to a name absent from a view mapping.
type UnknownViewError struct {
	Name string
}

func (e *UnknownViewError) Error() string {
	return fmt.Sprintf("datum: view has no field %q", e.Name)
}

func (e *UnknownViewError) Unwrap() error { return ErrUnknownView }

// ComputationError wraps a failure raised by a user-supplied function
// (computed, lazy, method, or view). It carries the field name, the original
// error, and the stack captured at the failure site.
type ComputationError struct {
	Field string
	Err   error
	Stack []byte
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("datum: computation for field %q failed: %v", e.Field, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// PathError reports a malformed path or a traversal blocked by a value that
// is neither a container nor a mapping.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("datum: path %q: %s", e.Path, e.Reason)
}

// TransactionError reports a failure of the transaction machinery itself,
// as opposed to an error returned by the transaction body.
type TransactionError struct {
	Op  string // the failed operation, e.g. "snapshot"
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("datum: transaction %s failed: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// FreezeError reports a failure of the immutability transform on one field.
type FreezeError struct {
	Field string
	Err   error
}

func (e *FreezeError) Error() string {
	return fmt.Sprintf("datum: error freezing field %q: %v", e.Field, e.Err)
}

func (e *FreezeError) Unwrap() error { return e.Err }

// SerializationError reports a failure converting a container to plain form.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("datum: serialization failed: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// PatchError reports a malformed patch entry.
type PatchError struct {
	Field  string
	Reason string
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("datum: invalid patch entry for field %q: %s", e.Field, e.Reason)
}
