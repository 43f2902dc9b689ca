package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrAddress is returned when an address does not match any of the
	// accepted identity formats.
	ErrAddress = Register(2, "invalid address")

	// ErrToken is returned when a token identifier is neither the native
	// asset sentinel nor a valid asset address.
	ErrToken = Register(3, "invalid token")

	// ErrAmount is returned when an amount is malformed, not positive,
	// carries excess precision or is out of the representable range.
	ErrAmount = Register(4, "invalid amount")

	// ErrMemo is returned when a memo exceeds the allowed length.
	ErrMemo = Register(5, "memo too long")

	// ErrUnauthorized is returned when the acting identity is not part of
	// the signer set that a proposal was created under.
	ErrUnauthorized = Register(6, "unauthorized")

	// ErrState is returned when an operation is not allowed for the
	// current proposal status, for example executing before the timelock
	// elapsed or voting on a terminal proposal.
	ErrState = Register(7, "invalid state")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = Register(8, "not found")

	// ErrConflict is returned by a compare-and-swap write when the stored
	// version moved since it was read.
	ErrConflict = Register(9, "version conflict")

	// ErrBusy is returned when an update could not be applied within the
	// configured number of attempts due to concurrent writers. It is safe
	// for the caller to retry.
	ErrBusy = Register(10, "too much contention")

	// ErrExecution is returned when the external execution collaborator
	// failed to submit a transfer. The proposal state is left unchanged
	// and the operation can be retried.
	ErrExecution = Register(11, "execution failed")

	// ErrInput stands for general input problems indication.
	ErrInput = Register(12, "invalid input")

	// ErrEmpty is returned when a value fails a not empty assertion.
	ErrEmpty = Register(13, "value is empty")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(14, "value overflow")

	// ErrExpired stands for entities past their lifetime.
	ErrExpired = Register(15, "expired")

	// ErrModel is returned whenever a persisted entity is invalid and
	// cannot be used.
	ErrModel = Register(16, "invalid model")

	// ErrHuman is returned when the application reaches a code path which
	// should not ever be reached if the code was written as expected.
	ErrHuman = Register(17, "coding error")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Popular root errors are declared in this package, but extensions may want
// to declare custom codes. This function ensures that no error code is used
// twice. Attempt to reuse an error code results in panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness. No
// two error instances should share the same error code.
var usedCodes = map[uint32]*Error{
	1: nil, // Error code 1 is reserved for non-registered errors and must not be used.
}

// Error represents a root error.
//
// Each error instance created during the runtime should wrap one of the
// declared root errors. This allows error tests and returning all errors
// to the client in a safe manner.
//
// If an extension has to declare a custom root error, always use the
// Register function to ensure error code uniqueness.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the unique code of this root error.
func (e Error) Code() uint32 {
	return e.code
}

// New returns a new error. Returned instance is having the root cause set
// to this error. Below two lines are equal
//
//	e.New("my description")
//	Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is check if given error instance is of a given kind/type. This involves
// unwrapping given error using the Cause method if available.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == kind {
			return true
		}

		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				if kind.Is(e) {
					return true
				}
			}
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap extends given error with an additional information.
//
// If err is nil, this returns nil, avoiding the need for an if statement
// when wrapping an error returned at the end of a function.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry the stacktrace information yet, attach
	// one. This should be done only once per error at the lowest frame
	// possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information.
//
// This function works like Wrap function with additional functionality of
// formatting the input as specified.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover captures a panic and stop its propagation. If panic happens it
// is transformed into a ErrPanic instance and assigned to given error.
// Call this function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType is a helper to augment an error with a corresponding type message.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	// Reflect usage is necessary to correctly compare with a nil
	// implementation of an error.
	if v := reflect.ValueOf(err); v.Kind() == reflect.Ptr && v.IsNil() {
		return true
	}
	return false
}

// stackTrace returns the first found stack trace frames in the error cause
// chain or nil if none was found.
func stackTrace(err error) errors.StackTrace {
	for {
		if err == nil {
			return nil
		}
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// stackTracer from pkg/errors.
type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// causer is an interface implemented by an error that supports wrapping.
// Use it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}
