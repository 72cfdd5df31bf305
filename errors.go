package xpa

import (
	"errors"
	"fmt"
)

// Error types for the binding. Commands fail synchronously with one
// of these; no partial reply set is ever returned on an error path.

// ArgumentError reports a wrong argument count or a wrongly shaped
// positional argument in a command or in the reply-set call protocol.
//
// Common causes:
//   - xpaget called with no or too many arguments
//   - an access point that is not a string scalar
//   - an unsupported key value when indexing a reply set
type ArgumentError struct {
	Reason string
}

func (e *ArgumentError) Error() string {
	return e.Reason
}

// ConnectionError reports a failure to establish the persistent
// connection or to register its exit teardown. Both abort the
// current command; nothing is retried.
type ConnectionError struct {
	Op  string // what failed
	Err error  // underlying driver error, if any
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IndexError reports a reply index outside [1, Count] after
// negative-index normalization. Index is the index as given by the
// caller, before normalization.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("out of range index %d (%d replies)", e.Index, e.Count)
}

// TypeError reports an unsupported element type for a payload or a
// scatter target. Type describes the rejected value.
type TypeError struct {
	Type string
}

func (e *TypeError) Error() string {
	return "invalid array type " + e.Type
}

// SizeMismatchError reports a scatter target whose total byte size
// differs from the payload length. The byte sizes are compared
// directly; element types are not cross-checked beyond their width.
type SizeMismatchError struct {
	Want int // payload byte length
	Got  int // target byte size
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("invalid array size %d (payload is %d bytes)", e.Got, e.Want)
}

// MemberError reports an unknown by-name query on a reply set.
// Known members are "replies", "buffers", "messages" and "errors".
type MemberError struct {
	Name string
}

func (e *MemberError) Error() string {
	return fmt.Sprintf("bad XPAData member %q", e.Name)
}

// IsArgumentError reports whether err is or wraps an ArgumentError.
func IsArgumentError(err error) bool {
	var e *ArgumentError
	return errors.As(err, &e)
}

// IsConnectionError reports whether err is or wraps a ConnectionError.
func IsConnectionError(err error) bool {
	var e *ConnectionError
	return errors.As(err, &e)
}

// IsIndexError reports whether err is or wraps an IndexError.
func IsIndexError(err error) bool {
	var e *IndexError
	return errors.As(err, &e)
}

// IsTypeError reports whether err is or wraps a TypeError.
func IsTypeError(err error) bool {
	var e *TypeError
	return errors.As(err, &e)
}

// IsSizeMismatchError reports whether err is or wraps a
// SizeMismatchError.
func IsSizeMismatchError(err error) bool {
	var e *SizeMismatchError
	return errors.As(err, &e)
}

// IsMemberError reports whether err is or wraps a MemberError.
func IsMemberError(err error) bool {
	var e *MemberError
	return errors.As(err, &e)
}
