// Package errors provides structured error handling for the hierarchy tree.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindResolution indicates an address or register key that did not resolve.
	KindResolution
	// KindCollision indicates a register name that is already in use.
	KindCollision
	// KindStructure indicates an operation the tree structure forbids.
	KindStructure
	// KindDetached indicates use of a branch handle whose node was destroyed.
	KindDetached
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates invalid configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindResolution:
		return "resolution"
	case KindCollision:
		return "collision"
	case KindStructure:
		return "structure"
	case KindDetached:
		return "detached"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Causes carried in TreeError.Err. Match them with errors.Is.
var (
	ErrUnknownKey     = errors.New("unknown register key")
	ErrMalformedIndex = errors.New("malformed index")
	ErrInvalidClass   = errors.New("invalid address class")
	ErrOutOfRange     = errors.New("branch does not exist")
	ErrMissingSegment = errors.New("missing address segment")
	ErrDuplicateKey   = errors.New("key already in use")
	ErrInvalidName    = errors.New("invalid name")
	ErrPermanent      = errors.New("permanent branch")
	ErrDetached       = errors.New("branch was destroyed")
)

// TreeError represents a structured error raised by a tree operation.
type TreeError struct {
	// Op is the operation that failed (e.g., "tree.Resolve").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Address is the segment or key that failed, if applicable.
	Address string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TreeError) Error() string {
	if e.Address != "" {
		return fmt.Sprintf("%s [%s] address=%s: %v", e.Op, e.Kind, e.Address, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TreeError) Unwrap() error {
	return e.Err
}

// New builds a TreeError whose cause wraps sentinel with a formatted detail.
func New(op string, kind ErrorKind, address string, sentinel error, format string, args ...any) *TreeError {
	return &TreeError{
		Op:      op,
		Kind:    kind,
		Address: address,
		Err:     fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

// KindOf returns the kind of the first TreeError in err's chain.
func KindOf(err error) ErrorKind {
	var te *TreeError
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "tree.Hierarchy.Update").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the tree.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *TreeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
