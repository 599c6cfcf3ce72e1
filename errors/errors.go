package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wippyai/jni-runtime/types"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad      Phase = "load"      // library loading and symbol lookup
	PhaseBind      Phase = "bind"      // function table binding
	PhaseInvoke    Phase = "invoke"    // instance interface calls
	PhaseBootstrap Phase = "bootstrap" // create/attach/detach
	PhaseSignature Phase = "signature" // signature parsing and marshalling
	PhaseRegister  Phase = "register"  // native method registration
	PhaseCallback  Phase = "callback"  // reverse calls from the VM
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch   Kind = "type_mismatch"
	KindInvalidInput   Kind = "invalid_input"
	KindUnsupported    Kind = "unsupported"
	KindNotFound       Kind = "not_found"
	KindNotInitialized Kind = "not_initialized"
	KindNilPointer     Kind = "nil_pointer"
	KindNullResult     Kind = "null_result"
	KindOverflow       Kind = "overflow"
	KindRegistration   Kind = "registration"
	KindPanic          Kind = "panic"
)

// Error is the structured error type used for host-side failures
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Sig    string
	Op     string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.GoType != "" || e.Sig != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.Sig != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", signature ")
			b.WriteString(e.Sig)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("signature ")
			b.WriteString(e.Sig)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Sig != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase == "" {
			return e.Kind == t.Kind
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the failing operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Sig sets the method signature involved
func (b *Builder) Sig(sig string) *Builder {
	b.err.Sig = sig
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// ErrNullResult matches any operation that returned a null handle without
// leaving an exception pending.
var ErrNullResult = &Error{Kind: KindNullResult}

// StatusError is the native-status channel: a non-zero return code from a
// bootstrap, invocation or status-returning instance operation.
type StatusError struct {
	Code   types.Status
	Op     string
	Detail string
}

func (e *StatusError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Code.Reason())
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteByte(')')
	}
	return b.String()
}

// Is matches another StatusError with the same code.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	return ok && t.Code == e.Code
}

// ThrowableError is the embedded-exception channel. Ref is a global reference
// to the thrown object owned by the Env that converted it.
type ThrowableError struct {
	Ref types.Throwable
	Op  string
}

func (e *ThrowableError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("java exception (ref %#x)", uintptr(e.Ref))
	}
	return fmt.Sprintf("%s: java exception (ref %#x)", e.Op, uintptr(e.Ref))
}

// Throwable returns the global reference held for the thrown object.
func (e *ThrowableError) Throwable() types.Throwable {
	return e.Ref
}

// Is matches any ThrowableError.
func (e *ThrowableError) Is(target error) bool {
	_, ok := target.(*ThrowableError)
	return ok
}

// Sentinels for errors.Is checks.
var (
	ErrDetached = &StatusError{Code: types.EDETACHED}
	ErrVersion  = &StatusError{Code: types.EVERSION}
	ErrNoMemory = &StatusError{Code: types.ENOMEM}
	ErrExists   = &StatusError{Code: types.EEXIST}
	ErrInvalid  = &StatusError{Code: types.EINVAL}
	ErrThrown   = &ThrowableError{}
)

// Status creates a native-status error for op.
func Status(code types.Status, op string) *StatusError {
	return &StatusError{Code: code, Op: op}
}

// Statusf creates a native-status error with a formatted detail.
func Statusf(code types.Status, op, format string, args ...any) *StatusError {
	return &StatusError{Code: code, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// AsThrowable extracts a ThrowableError from err's chain.
func AsThrowable(err error) (*ThrowableError, bool) {
	var t *ThrowableError
	if errors.As(err, &t) {
		return t, true
	}
	return nil, false
}

// AsStatus extracts a StatusError from err's chain.
func AsStatus(err error) (*StatusError, bool) {
	var s *StatusError
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}

// Convenience constructors for common error patterns

// NullResult reports a creator operation that returned null with no pending exception
func NullResult(op string) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindNullResult,
		Op:     op,
		Detail: "returned null without a pending exception",
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, sig, goType, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Sig:    sig,
		GoType: goType,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Detail: what + " is nil",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a registration error
func Registration(class, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s.%s", class, name),
		Cause:  cause,
	}
}

// Panic wraps a recovered panic value
func Panic(phase Phase, op string, v any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindPanic,
		Op:     op,
		Detail: fmt.Sprint(v),
		Value:  v,
	}
}

// Load creates a library loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNotFound,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
